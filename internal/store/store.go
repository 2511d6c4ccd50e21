// Package store holds the immutable listing dataset loaded once at startup.
package store

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"listing/internal/domain"
	"listing/internal/domain/models"
	"listing/internal/facet"
	"listing/internal/query"
	"listing/internal/utils"
)

// Store is a read-only snapshot of the dataset with its facet index. All
// methods are safe for concurrent use.
type Store struct {
	records  []models.Record
	index    *facet.Index
	engine   *query.Engine
	byID     map[string]int
	source   string
	loadedAt time.Time
}

// New snapshots records. The caller must not modify the slice afterwards.
func New(records []models.Record) *Store {
	if records == nil {
		records = []models.Record{}
	}
	s := &Store{
		records:  records,
		index:    facet.Build(records),
		byID:     make(map[string]int, len(records)),
		loadedAt: time.Now(),
	}
	s.engine = query.NewEngine(records, s.index)

	dups := 0
	for i, r := range records {
		if _, ok := s.byID[r.ID.Raw]; ok {
			dups++
			continue
		}
		s.byID[r.ID.Raw] = i
	}
	if dups > 0 {
		utils.LogWarn("", "store", "index_ids", "duplicate record ids, first occurrence wins", zap.Int("duplicates", dups))
	}
	return s
}

// Open loads the dataset from src exactly once. Any failure is a LoadError.
func Open(ctx context.Context, src Source) (*Store, error) {
	started := time.Now()
	records, err := src.Records(ctx)
	if err != nil {
		if !domain.IsLoad(err) {
			err = domain.LoadError{Source: src.String(), Err: err}
		}
		utils.LogWarn("", "store", "load", err.Error())
		return nil, err
	}

	s := New(records)
	s.source = src.String()
	utils.LogEvent("", "store", "load", "dataset loaded",
		zap.String("source", s.source),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return s, nil
}

// Records returns a copy of the dataset in load order.
func (s *Store) Records() []models.Record {
	return slices.Clone(s.records)
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) Index() *facet.Index {
	return s.index
}

// Derive computes a view over the dataset.
func (s *Store) Derive(st query.State) query.View {
	return s.engine.Derive(st)
}

// ByID returns the first record with the given id.
func (s *Store) ByID(id string) (models.Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Record{}, false
	}
	return s.records[i], true
}

func (s *Store) Source() string {
	return s.source
}

func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}
