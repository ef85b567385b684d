// Package kv provides the key-value persistence used for zenstreak state.
// Every key holds one opaque value; callers own the encoding.
package kv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var ErrNotFound = errors.New("kv: key not found")

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
