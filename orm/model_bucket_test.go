package orm

import (
	"testing"

	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/store"
	"github.com/tendermint/go-amino"
)

var testCdc = amino.NewCodec()

// Counter is a test model that tracks a single number.
type Counter struct {
	Count int64
}

var _ Model = (*Counter)(nil)

func (c *Counter) Marshal() ([]byte, error) {
	return testCdc.MarshalBinaryBare(c)
}

func (c *Counter) Unmarshal(bz []byte) error {
	return testCdc.UnmarshalBinaryBare(bz, c)
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

func newCounterBucket() ModelBucket {
	return NewModelBucket(NewBucket("cnts", NewSimpleObj(nil, &Counter{})))
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	if err := b.Put(db, []byte("c1"), &Counter{Count: 42}); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}

	var got Counter
	if err := b.One(db, []byte("c1"), &got); err != nil {
		t.Fatalf("cannot load: %+v", err)
	}
	if got.Count != 42 {
		t.Fatalf("unexpected count: %d", got.Count)
	}
}

func TestModelBucketOneMissing(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	var got Counter
	err := b.One(db, []byte("nope"), &got)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestModelBucketPutInvalid(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	err := b.Put(db, []byte("c1"), &Counter{Count: -1})
	if !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %+v", err)
	}
}

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	if err := b.Delete(db, []byte("nope")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}

	if err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}
	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	if err := b.Has(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("still present after delete: %+v", err)
	}
}

func TestBucketKeysDoNotCollide(t *testing.T) {
	db := store.MemStore()
	a := NewBucket("aaa", NewSimpleObj(nil, &Counter{}))
	b := NewBucket("aab", NewSimpleObj(nil, &Counter{}))

	if err := a.Save(db, NewSimpleObj([]byte("k"), &Counter{Count: 1})); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}
	if err := b.Save(db, NewSimpleObj([]byte("k"), &Counter{Count: 2})); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}

	obj, err := a.Get(db, []byte("k"))
	if err != nil {
		t.Fatalf("cannot load: %+v", err)
	}
	if c := obj.Value().(*Counter); c.Count != 1 {
		t.Fatalf("bucket data overwritten: %d", c.Count)
	}
}

func TestBucketNameValidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on bad bucket name")
		}
	}()
	NewBucket("Bad Name", NewSimpleObj(nil, &Counter{}))
}
