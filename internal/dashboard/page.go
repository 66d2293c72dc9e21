// Package dashboard turns a category's strategy records into the view-model
// rendered by the strategy page.
package dashboard

import (
	"fmt"
	"html/template"

	"github.com/newthinker/stratdeck/internal/core"
	"github.com/newthinker/stratdeck/internal/metrics"
	"go.uber.org/zap"
)

// StatusLive is the status tag shown on every card.
const StatusLive = "Live"

// ChartDrawer draws an equity series for the chart target of one card.
type ChartDrawer interface {
	DrawSeries(target string, points []float64) (template.HTML, error)
}

// Page is the strategy page view-model.
type Page struct {
	Header      string  `json:"header"`
	Description string  `json:"description"`
	Empty       bool    `json:"empty"`
	Cards       []Card  `json:"cards"`
	Totals      *Totals `json:"totals,omitempty"`
}

// Card describes one strategy card.
type Card struct {
	Name              string        `json:"name"`
	Risk              Risk          `json:"risk"`
	Status            string        `json:"status"`
	NetProfit         string        `json:"net_profit"`
	NetProfitPositive bool          `json:"net_profit_positive"`
	WinRate           string        `json:"win_rate"`
	MaxDrawdown       string        `json:"max_drawdown"`
	TotalTrades       string        `json:"total_trades"`
	ChartID           string        `json:"chart_id"`
	Chart             template.HTML `json:"-"`
	PointLabels       []string      `json:"point_labels"`
	ReportURL         string        `json:"report_url"`

	Profit   float64 `json:"-"`
	Balance  float64 `json:"-"`
	Drawdown float64 `json:"-"`
}

// Totals aggregates every card on the page.
type Totals struct {
	Balance   float64 `json:"-"`
	NetProfit float64 `json:"-"`

	BalanceText   string `json:"balance"`
	NetProfitText string `json:"net_profit"`
}

// Builder assembles pages. It holds no per-page state.
type Builder struct {
	descriptions *Descriptions
	drawer       ChartDrawer
	logger       *zap.Logger
	metrics      *metrics.Registry
}

// NewBuilder creates a Builder. drawer and reg may be nil.
func NewBuilder(descriptions *Descriptions, drawer ChartDrawer, logger *zap.Logger, reg *metrics.Registry) *Builder {
	if descriptions == nil {
		descriptions = NewDescriptions("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		descriptions: descriptions,
		drawer:       drawer,
		logger:       logger,
		metrics:      reg,
	}
}

// Descriptions exposes the description table.
func (b *Builder) Descriptions() *Descriptions {
	return b.descriptions
}

// Build renders category with its records. Records are processed in order;
// an empty set produces a placeholder page without totals.
func (b *Builder) Build(category string, records []core.StrategyRecord) Page {
	page := Page{
		Header:      category,
		Description: b.descriptions.Lookup(category),
		Cards:       []Card{},
	}

	if len(records) == 0 {
		page.Empty = true
		return page
	}

	var totalProfit, totalBalance float64
	page.Cards = make([]Card, 0, len(records))

	for i, rec := range records {
		card := b.card(i, rec)
		totalProfit += card.Profit
		totalBalance += card.Balance

		card.Chart = b.draw(card.ChartID, rec.EquityCurve)
		page.Cards = append(page.Cards, card)
	}

	page.Totals = newTotals(totalBalance, totalProfit)
	return page
}

func (b *Builder) card(index int, rec core.StrategyRecord) Card {
	profit := ParseAmount(rec.Stats.NetProfit)
	balance := ParseAmount(rec.Stats.FinalBalance)
	drawdown := ParseAmount(rec.Stats.MaxDrawdown)
	risk := ClassifyRisk(drawdown)

	if b.metrics != nil {
		b.metrics.RecordCard(string(risk))
	}

	labels := make([]string, len(rec.EquityCurve))
	for i, v := range rec.EquityCurve {
		labels[i] = FormatDollars(v)
	}

	return Card{
		Name:              rec.Name,
		Risk:              risk,
		Status:            StatusLive,
		NetProfit:         rec.Stats.NetProfit,
		NetProfitPositive: profit >= 0, // false for NaN
		WinRate:           rec.Stats.WinRate,
		MaxDrawdown:       rec.Stats.MaxDrawdown,
		TotalTrades:       rec.Stats.TotalTrades.String(),
		ChartID:           fmt.Sprintf("chart-%d", index),
		PointLabels:       labels,
		ReportURL:         "reports/" + rec.Filename,
		Profit:            profit,
		Balance:           balance,
		Drawdown:          drawdown,
	}
}

func (b *Builder) draw(target string, points []float64) template.HTML {
	if b.drawer == nil {
		return ""
	}

	out, err := b.drawer.DrawSeries(target, points)
	if err != nil {
		b.logger.Warn("chart draw failed",
			zap.String("target", target),
			zap.Int("points", len(points)),
			zap.Error(err),
		)
		if b.metrics != nil {
			b.metrics.RecordChart("error")
		}
		return ""
	}

	if b.metrics != nil {
		b.metrics.RecordChart("ok")
	}
	return out
}

// newTotals formats the page totals. The net profit always carries a literal "+$"
// prefix, even when the sum is negative.
func newTotals(balance, profit float64) *Totals {
	return &Totals{
		Balance:       balance,
		NetProfit:     profit,
		BalanceText:   FormatDollars(balance),
		NetProfitText: "+$" + FormatFixed2(profit),
	}
}
