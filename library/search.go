package library

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/sahilm/fuzzy"

	"sonicbridge/models"
)

// Search returns items of q.Kind whose name matches q.Term. Names that
// contain the term come first, then fuzzy matches scoring at least
// q.MinScore, best first. An empty term matches everything in name order.
func (s *Store) Search(ctx context.Context, q models.SearchQuery) ([]models.Item, error) {
	b := selectItems().Where(sq.Eq{"i.kind": q.Kind}).OrderBy("i.sort_name COLLATE NOCASE")
	if q.Kind == models.KindArtist {
		b = artistsInFolder(b, q.FolderID)
	} else {
		b = inFolder(b, q.FolderID)
	}
	candidates, err := s.queryItems(ctx, b)
	if err != nil {
		return nil, err
	}
	return page(rank(candidates, q.Term, q.MinScore), q.Offset, q.Limit), nil
}

func rank(items []models.Item, term string, minScore int) []models.Item {
	if term == "" {
		return items
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}

	lowerTerm := strings.ToLower(term)
	var exact, fuzzyHits []models.Item
	for _, m := range fuzzy.Find(term, names) {
		it := items[m.Index]
		switch {
		case strings.Contains(strings.ToLower(it.Name), lowerTerm):
			exact = append(exact, it)
		case m.Score >= minScore:
			fuzzyHits = append(fuzzyHits, it)
		}
	}
	return append(exact, fuzzyHits...)
}

func page(items []models.Item, offset, limit int) []models.Item {
	if offset >= len(items) {
		return []models.Item{}
	}
	items = items[max(offset, 0):]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
