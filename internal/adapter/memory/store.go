// Package memory provides an in-process row store for small lexicons and
// tests. It evaluates equality predicates only; pattern predicates are
// rejected, which is what makes tone enumeration necessary on this
// backend.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/search"
)

type Store struct {
	mu      sync.RWMutex
	entries map[string][]domain.Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string][]domain.Entry)}
}

// Add inserts entries, assigning identities to entries without one.
func (s *Store) Add(entries ...domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		s.entries[e.Dictionary] = append(s.entries[e.Dictionary], e)
	}
}

func (s *Store) Search(ctx context.Context, dictionary string, filter search.Predicate) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Entry
	for _, e := range s.entries[dictionary] {
		if filter == nil {
			out = append(out, e)
			continue
		}
		ok, err := eval(filter, e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func eval(p search.Predicate, e domain.Entry) (bool, error) {
	switch p := p.(type) {
	case search.Equals:
		got := e.Column(p.Column)
		if p.CaseInsensitive {
			return strings.EqualFold(got, p.Value), nil
		}
		return got == p.Value, nil
	case search.And:
		for _, c := range p {
			ok, err := eval(c, e)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case search.Or:
		for _, c := range p {
			ok, err := eval(c, e)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case search.Like:
		return false, fmt.Errorf("pattern predicates: %w", domain.ErrUnsupportedPredicate)
	default:
		return false, fmt.Errorf("predicate %T: %w", p, domain.ErrUnsupportedPredicate)
	}
}
