package library

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// MaxRating is the highest user rating an item can carry.
const MaxRating = 5

func (s *Store) requireItem(ctx context.Context, id string) error {
	it, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) annotate(ctx context.Context, id, column string, value any) error {
	if err := s.requireItem(ctx, id); err != nil {
		return err
	}
	_, err := sq.Insert("annotations").
		Columns("item_id", column).
		Values(id, value).
		Suffix(fmt.Sprintf("ON CONFLICT(item_id) DO UPDATE SET %[1]s = excluded.%[1]s", column)).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("annotate %s: %w", id, err)
	}
	return nil
}

// SetFavorite stars or unstars an item.
func (s *Store) SetFavorite(ctx context.Context, id string, on bool) error {
	var value any
	if on {
		value = s.now().UTC()
	}
	return s.annotate(ctx, id, "favorite", value)
}

// SetRating sets the rating of an item. Zero clears it.
func (s *Store) SetRating(ctx context.Context, id string, rating float64) error {
	if rating < 0 || rating > MaxRating {
		return fmt.Errorf("rating %v out of range 0..%d", rating, MaxRating)
	}
	var value any
	if rating > 0 {
		value = rating
	}
	return s.annotate(ctx, id, "rating", value)
}
