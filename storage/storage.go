package storage

import "errors"

// ErrNoRecord is returned by Get when no value has been stored under the key.
var ErrNoRecord = errors.New("storage: no record")

// Storage persists whole record sets as opaque strings, one key per set.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
