package app

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by SlotStore.Get when nothing was ever stored
// under the key.
var ErrSlotNotFound = errors.New("storage slot not found")

// SlotStore is a durable string key/value store holding the serialized cart.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
