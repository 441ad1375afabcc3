// Package review persists per-product review lists in the durable
// key-value store, one list per product under product_reviews_<productId>.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/storefront/internal/kv"
)

var ErrNotFound = errors.New("review not found")

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Images    []string  `json:"images,omitempty"`
	Date      time.Time `json:"date"`
}

type Store struct {
	store kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{store: store}
}

func storageKey(productID string) string {
	return "product_reviews_" + productID
}

// List returns the reviews for a product, oldest first. No reviews yet is
// an empty list, not an error.
func (s *Store) List(ctx context.Context, productID string) ([]Review, error) {
	var list []Review
	if err := s.store.Get(ctx, storageKey(productID), &list); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load reviews for %s: %w", productID, err)
	}
	return list, nil
}

// Add appends a review and rewrites the product's list. Missing id and
// date are filled in.
func (s *Store) Add(ctx context.Context, r Review) (Review, error) {
	list, err := s.List(ctx, r.ProductID)
	if err != nil {
		return Review{}, err
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	list = append(list, r)

	if err := s.store.Set(ctx, storageKey(r.ProductID), list); err != nil {
		return Review{}, fmt.Errorf("save reviews for %s: %w", r.ProductID, err)
	}
	return r, nil
}

// Update replaces the review with the same id, keeping its position.
func (s *Store) Update(ctx context.Context, r Review) error {
	list, err := s.List(ctx, r.ProductID)
	if err != nil {
		return err
	}

	found := false
	for i := range list {
		if list[i].ID == r.ID {
			list[i] = r
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if err := s.store.Set(ctx, storageKey(r.ProductID), list); err != nil {
		return fmt.Errorf("save reviews for %s: %w", r.ProductID, err)
	}
	return nil
}

// Delete removes the review with the given id from the product's list.
func (s *Store) Delete(ctx context.Context, productID, reviewID string) error {
	list, err := s.List(ctx, productID)
	if err != nil {
		return err
	}

	kept := list[:0]
	for _, rv := range list {
		if rv.ID != reviewID {
			kept = append(kept, rv)
		}
	}
	if len(kept) == len(list) {
		return ErrNotFound
	}

	if err := s.store.Set(ctx, storageKey(productID), kept); err != nil {
		return fmt.Errorf("save reviews for %s: %w", productID, err)
	}
	return nil
}
