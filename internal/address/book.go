// Package address keeps the user's saved shipping addresses in the durable
// key-value store, as one plain ordered list under a fixed key.
package address

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andreasstove999/storefront/internal/kv"
)

// StorageKey is the fixed namespace the whole list lives under.
const StorageKey = "savedAddresses"

// SavedAddress is a reusable shipping contact. The id is the creation
// timestamp in milliseconds.
type SavedAddress struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Book struct {
	store kv.Store

	// nowMillis is swapped out in tests for deterministic ids.
	nowMillis func() int64
}

func NewBook(store kv.Store) *Book {
	return &Book{
		store:     store,
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}
}

// List returns all saved addresses in the order they were saved. A missing
// key means nothing has been saved yet, not an error.
func (b *Book) List(ctx context.Context) ([]SavedAddress, error) {
	var list []SavedAddress
	if err := b.store.Get(ctx, StorageKey, &list); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load saved addresses: %w", err)
	}
	return list, nil
}

// Add appends the address and rewrites the full list. A zero id is stamped
// with the current timestamp.
func (b *Book) Add(ctx context.Context, a SavedAddress) (SavedAddress, error) {
	list, err := b.List(ctx)
	if err != nil {
		return SavedAddress{}, err
	}

	if a.ID == 0 {
		a.ID = b.nowMillis()
	}
	list = append(list, a)

	if err := b.store.Set(ctx, StorageKey, list); err != nil {
		return SavedAddress{}, fmt.Errorf("save addresses: %w", err)
	}
	return a, nil
}

// Get returns the saved address with the given id.
func (b *Book) Get(ctx context.Context, id int64) (SavedAddress, error) {
	list, err := b.List(ctx)
	if err != nil {
		return SavedAddress{}, err
	}
	for _, a := range list {
		if a.ID == id {
			return a, nil
		}
	}
	return SavedAddress{}, kv.ErrNotFound
}

// Remove deletes the address with the given id and rewrites the list.
// Removing an unknown id is a no-op.
func (b *Book) Remove(ctx context.Context, id int64) error {
	list, err := b.List(ctx)
	if err != nil {
		return err
	}

	kept := list[:0]
	for _, a := range list {
		if a.ID != id {
			kept = append(kept, a)
		}
	}

	if err := b.store.Set(ctx, StorageKey, kept); err != nil {
		return fmt.Errorf("save addresses: %w", err)
	}
	return nil
}
