// Package memory provides an in-memory RangeQuerier backed by fixture data,
// used by tests and offline preview runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"budgetmail/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	ranges map[string][][]string
}

var _ sheets.RangeQuerier = (*Store)(nil)

func New(ranges map[string][][]string) *Store {
	s := &Store{ranges: make(map[string][][]string, len(ranges))}
	for rng, rows := range ranges {
		s.Set(rng, rows)
	}
	return s
}

// Set stores a copy of the rows under the given range specifier.
func (s *Store) Set(rangeSpec string, rows [][]string) {
	cp := make([][]string, len(rows))
	for i, row := range rows {
		cp[i] = append([]string(nil), row...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ranges == nil {
		s.ranges = make(map[string][][]string)
	}
	s.ranges[rangeSpec] = cp
}

// Query returns a copy of the rows for a known range. Unknown ranges are an
// error, mirroring how a real sheet rejects a bad range rather than
// returning nothing.
func (s *Store) Query(_ context.Context, rangeSpec string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.ranges[rangeSpec]
	if !ok {
		return nil, fmt.Errorf("unknown range %q", rangeSpec)
	}
	cp := make([][]string, len(rows))
	for i, row := range rows {
		cp[i] = append([]string(nil), row...)
	}
	return cp, nil
}
