package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the DB that holds one type of model.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Model
}

// NewBucket creates a bucket storing models of the same type as proto.
// It panics if the name is not 3 to 10 lowercase letters or underscores.
func NewBucket(name string, proto Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// The result never shares memory with the prefix.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get loads the model stored under key. It returns nil if there is none.
func (b Bucket) Get(db bazaar.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(b.DBKey(key))
	switch {
	case err != nil:
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return nil, nil
	}
	return b.Parse(raw)
}

// Has returns true if a model is stored under the key.
func (b Bucket) Has(db bazaar.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Parse decodes raw into a fresh model of the bucket type.
func (b Bucket) Parse(raw []byte) (Model, error) {
	m := blank(b.proto)
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", b.name, err)
	}
	return m, nil
}

// Save validates and writes m under key, overwriting any previous value.
func (b Bucket) Save(db bazaar.KVStore, key []byte, m Model) error {
	r := record{key: key, value: m}
	if err := r.validate(); err != nil {
		return err
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %s: %s", b.name, err)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete will remove the value at a key
func (b Bucket) Delete(db bazaar.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
