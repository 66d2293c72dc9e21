package dashboard

import "github.com/newthinker/stratdeck/internal/core"

// DefaultDescription is shown for categories without their own copy.
const DefaultDescription = "Algorithmic trading system utilizing technical indicators for optimal market entry."

// Entry is one category description.
type Entry struct {
	Name        string
	Description string
}

var builtinDescriptions = []Entry{
	{
		Name: core.CategoryTrendContinuation,
		Description: "A low-drawdown Trend Continuation strategy. It identifies established market direction " +
			"and enters on pullbacks, ensuring high-probability entries with tight risk management. " +
			"Ideal for long-term capital preservation.",
	},
	{
		Name: core.CategoryTrendlineScalper,
		Description: "A high-frequency Scalping strategy targeting 5.0x ATR zones. Utilizes RSI filtering to " +
			"catch rapid reversals and short-term corrections in volatile markets.",
	},
}

// Descriptions is the category description table. It is read-only after
// construction and safe for concurrent use.
type Descriptions struct {
	entries  map[string]string
	order    []string
	fallback string
}

// NewDescriptions builds the table from the built-in entries followed by
// extra, which may override built-ins. An empty fallback selects
// DefaultDescription.
func NewDescriptions(fallback string, extra ...Entry) *Descriptions {
	if fallback == "" {
		fallback = DefaultDescription
	}
	d := &Descriptions{
		entries:  make(map[string]string),
		fallback: fallback,
	}
	for _, e := range append(append([]Entry{}, builtinDescriptions...), extra...) {
		if _, ok := d.entries[e.Name]; !ok {
			d.order = append(d.order, e.Name)
		}
		d.entries[e.Name] = e.Description
	}
	return d
}

// Lookup returns the description for category or the fallback.
func (d *Descriptions) Lookup(category string) string {
	if desc, ok := d.entries[category]; ok && desc != "" {
		return desc
	}
	return d.fallback
}

// Categories returns the described categories in table order.
func (d *Descriptions) Categories() []string {
	return append([]string(nil), d.order...)
}
