// Package catalog loads the strategy record set published as data.json.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/newthinker/stratdeck/internal/core"
	"github.com/newthinker/stratdeck/internal/metrics"
	"github.com/newthinker/stratdeck/internal/storage/artifact"
)

// Loader provides the record set for one page view.
type Loader interface {
	Load(ctx context.Context) ([]core.StrategyRecord, error)
}

// Source reads the record set from an artifact store. Every call to Load
// reads the file again; nothing is cached between page views.
type Source struct {
	store   artifact.Store
	file    string
	metrics *metrics.Registry
}

// NewSource creates a Source for file inside store. reg may be nil.
func NewSource(store artifact.Store, file string, reg *metrics.Registry) *Source {
	return &Source{store: store, file: file, metrics: reg}
}

// Load reads and decodes the record set.
func (s *Source) Load(ctx context.Context) ([]core.StrategyRecord, error) {
	start := time.Now()

	records, err := s.load(ctx)

	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordDataLoad(status, time.Since(start).Seconds())
	}
	return records, err
}

func (s *Source) load(ctx context.Context) ([]core.StrategyRecord, error) {
	data, err := s.store.Read(ctx, s.file)
	if err != nil {
		return nil, core.WrapError(core.ErrDataUnavailable, err)
	}

	var records []core.StrategyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, core.WrapError(core.ErrDataMalformed, err)
	}
	return records, nil
}

// Filter returns the records whose category equals category exactly, in
// their original order. The result is never nil.
func Filter(records []core.StrategyRecord, category string) []core.StrategyRecord {
	out := make([]core.StrategyRecord, 0, len(records))
	for _, rec := range records {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(records []core.StrategyRecord) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, rec := range records {
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		out = append(out, rec.Category)
	}
	return out
}
