package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Known strategy categories. Ingest assigns them from report filenames and the
// dashboard describes them; data.json may carry others.
const (
	CategoryTrendlineScalper  = "Trendline Scalper"
	CategoryTrendContinuation = "Trend Continuation"
	CategorySpikeDetector     = "Spike Detector"
	CategoryGeneral           = "General Strategy"
)

// StrategyRecord is one backtested strategy as stored in data.json.
type StrategyRecord struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Filename    string    `json:"filename"`
	Stats       Stats     `json:"stats"`
	EquityCurve []float64 `json:"equity_curve"`
}

// Stats holds display-formatted statistics. Numeric fields must be parsed
// before doing arithmetic on them.
type Stats struct {
	NetProfit    string       `json:"net_profit"`
	FinalBalance string       `json:"final_balance"`
	WinRate      string       `json:"win_rate"`
	MaxDrawdown  string       `json:"max_drawdown"`
	TotalTrades  DisplayValue `json:"total_trades"`
}

// DisplayValue is a JSON string or number kept as its display text.
type DisplayValue string

// UnmarshalJSON accepts a quoted string or a bare number literal.
func (d *DisplayValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DisplayValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("display value must be a string or number: %w", err)
	}
	*d = DisplayValue(n.String())
	return nil
}

// MarshalJSON writes the value back as a string.
func (d DisplayValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// String returns the display text.
func (d DisplayValue) String() string {
	return string(d)
}
