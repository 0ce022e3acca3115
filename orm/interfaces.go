/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are addressed by their primary key only, keys are
  derived by the extension that owns the bucket.
* Easy queries for one, and creation that refuses to overwrite.
*/
package orm

import (
	"github.com/iov-one/bazaar"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	bazaar.Persistent
	Validate() error
}
