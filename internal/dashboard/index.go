package dashboard

import (
	"github.com/newthinker/stratdeck/internal/catalog"
	"github.com/newthinker/stratdeck/internal/core"
)

// CategorySummary is one entry of the category index.
type CategorySummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Strategies  int    `json:"strategies"`
}

// Index lists the described categories first, then any other category found
// in records, with the number of strategies in each. records may be nil when
// the data file could not be loaded.
func (b *Builder) Index(records []core.StrategyRecord) []CategorySummary {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Category]++
	}

	names := b.descriptions.Categories()
	described := make(map[string]struct{}, len(names))
	for _, name := range names {
		described[name] = struct{}{}
	}
	for _, name := range catalog.Categories(records) {
		if _, ok := described[name]; !ok {
			names = append(names, name)
		}
	}

	out := make([]CategorySummary, 0, len(names))
	for _, name := range names {
		out = append(out, CategorySummary{
			Name:        name,
			Description: b.descriptions.Lookup(name),
			Strategies:  counts[name],
		})
	}
	return out
}
