package services

import (
	"encoding/json"
	"errors"

	"gospelcms/storage"
)

// Storage keys, one per record set.
const (
	postsKey      = "posts"
	categoriesKey = "categories"
	tagsKey       = "tags"
	usersKey      = "users"
)

// loadSet reads and decodes a whole record set. A missing key is an empty set,
// not an error.
func loadSet[T any](store storage.Storage, key string) ([]T, error) {
	raw, err := store.Get(key)
	if errors.Is(err, storage.ErrNoRecord) {
		return []T{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read " + key, Err: err}
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, &StorageError{Op: "decode " + key, Err: err}
	}
	return records, nil
}

func saveSet[T any](store storage.Storage, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return &StorageError{Op: "encode " + key, Err: err}
	}
	if err := store.Set(key, string(raw)); err != nil {
		return &StorageError{Op: "write " + key, Err: err}
	}
	return nil
}
