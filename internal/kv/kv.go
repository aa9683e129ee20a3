// Package kv is the durable key/value substrate backing session state:
// the cart, the current user, the mirrored account lists, and the saved
// PC build. String keys, JSON-encoded values, one LevelDB directory.
//
// Each consumer owns its keys exclusively; no key is shared between the
// cart, auth, or build stores, and none is shared with the relational
// catalog store.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// Keys owned by the session stores.
const (
	KeyCart        = "vertix_cart"
	KeySessionUser = "vertix_user"
	KeyUsers       = "vertix_users"
	KeyCredentials = "vertix_credentials"
	KeyPCBuild     = "vertix_pc_build"
)

// ErrNoKey indicates the key has never been written (or was deleted).
var ErrNoKey = errors.New("key not found")

// Store is a LevelDB-backed string-keyed JSON store.
type Store struct {
	db *leveldb.DB
}

// Open creates or opens the substrate at the given directory.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutJSON serializes v and stores it under key.
func (s *Store) PutJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("put %s: marshal: %w", key, err)
	}
	if err := s.db.Put([]byte(key), data, nil); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// GetJSON loads key into v. Returns ErrNoKey when the key is absent;
// a present-but-unparseable value surfaces as a plain error so callers
// can decide whether to fall back to an empty state.
func (s *Store) GetJSON(key string, v any) error {
	data, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return fmt.Errorf("get %s: %w", key, ErrNoKey)
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("get %s: unmarshal: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
