// Package storage provides the durable key-value store that survives process
// restarts: the session marker and the last completed order live here.
package storage

import (
	"context"
	"errors"
)

// Keys shared with the storefront views.
const (
	KeyLoggedIn  = "isUserLoggedIn"
	KeyUserID    = "userId"
	KeyLastOrder = "lastOrder"
)

// ErrUnknownDriver reports a STORAGE_DRIVER value with no backend.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KV is a string-to-string store. Get reports a missing key with ok=false and
// a nil error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
