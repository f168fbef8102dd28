// Package bolt persists the cart to an embedded bbolt key-value file. The
// whole cart is one JSON document under a single key, written synchronously
// on every mutation and read back once at startup.
package bolt

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"go.etcd.io/bbolt"

	"github.com/dukicks/storefront/internal/domain/cart"
)

var (
	cartBucket = []byte("cart")
	itemsKey   = []byte("items")
)

var _ cart.Storage = (*CartStore)(nil)

// CartStore implements cart.Storage on top of a bbolt database file.
type CartStore struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the bbolt file at path and ensures the
// cart bucket exists.
func Open(path string) (*CartStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open cart db")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cartBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create cart bucket")
	}

	return &CartStore{db: db}, nil
}

// Close closes the underlying database file.
func (s *CartStore) Close() error {
	return s.db.Close()
}

// Load reads the stored line items. A missing key yields an empty cart and
// no error; a document that fails to decode is an error, which the cart
// treats as "start empty".
func (s *CartStore) Load() ([]cart.LineItem, error) {
	var items []cart.LineItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(cartBucket).Get(itemsKey)
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return errors.Wrap(err, "decode stored cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the stored document with the given line items.
func (s *CartStore) Save(items []cart.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(cartBucket).Put(itemsKey, raw)
	})
}
