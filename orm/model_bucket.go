package orm

import (
	"reflect"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists and ErrNotFound
	// otherwise.
	Has(db bazaar.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database, overwriting any previous
	// value.
	Put(db bazaar.KVStore, key []byte, m Model) error

	// Create saves given model in the database only if the key is not
	// taken yet. It returns ErrDuplicate otherwise.
	Create(db bazaar.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db bazaar.KVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as given in a bucket of given name.
func NewModelBucket(name string, m Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name, m),
		model: reflect.TypeOf(m),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error {
	res, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if res == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db bazaar.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.b.Name())
	}
	return nil
}

func (mb *modelBucket) Put(db bazaar.KVStore, key []byte, m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %s in %s bucket", t, mb.b.Name())
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	if err := mb.b.Save(db, key, m); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Create(db bazaar.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s %X", mb.b.Name(), key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db bazaar.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}
