// Package kvstore is the flat key-value persistence used for the selection
// and appearance preferences. Values are JSON documents stored as strings.
// Backends: fyne app preferences (desktop), diskv (headless and shared with
// other processes) and an in-memory map for tests.
package kvstore

import (
	jsoniter "github.com/json-iterator/go"

	barerrors "github.com/ytget/prodbar/internal/errors"
)

// Storage is a string keyed, string valued store. Set replaces the whole value.
type Storage interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadJSON decodes the value under key into v. It reports false with a nil
// error when the key is absent, and a MALFORMED_PERSISTED_STATE error when
// the stored value does not decode.
func LoadJSON(s Storage, key string, v any) (bool, error) {
	raw, found, err := s.Get(key)
	if err != nil {
		return false, barerrors.WrapWithCode(err, barerrors.ErrMalformedPersisted,
			"Could not read "+key, "defaults will be used")
	}
	if !found || raw == "" {
		return false, nil
	}

	if err := json.UnmarshalFromString(raw, v); err != nil {
		return false, barerrors.WrapWithCode(err, barerrors.ErrMalformedPersisted,
			"Stored value for "+key+" is not valid", "defaults will be used")
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key in one Set call
func SaveJSON(s Storage, key string, v any) error {
	raw, err := json.MarshalToString(v)
	if err != nil {
		return barerrors.PersistenceFailed(err, key)
	}
	if err := s.Set(key, raw); err != nil {
		return barerrors.PersistenceFailed(err, key)
	}
	return nil
}
