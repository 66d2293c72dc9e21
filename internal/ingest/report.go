// Package ingest rebuilds data.json from the HTML backtest reports.
package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/newthinker/stratdeck/internal/core"
	"golang.org/x/net/html"
)

var equityData = regexp.MustCompile(`data:\s*\[([\d.,\s-]+)\]`)

// CategoryFromFilename maps a report filename to its strategy category.
func CategoryFromFilename(filename string) string {
	switch {
	case strings.Contains(filename, "TrendlineReport"):
		return core.CategoryTrendlineScalper
	case strings.Contains(filename, "SafeReport"):
		return core.CategoryTrendContinuation
	case strings.Contains(filename, "Spike"):
		return core.CategorySpikeDetector
	default:
		return core.CategoryGeneral
	}
}

// ParseReport extracts one strategy record from a report document. It
// returns a nil record without error when the report carries no statistics.
func ParseReport(filename string, content []byte) (*core.StrategyRecord, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, core.WrapError(core.ErrReportUnparsable, fmt.Errorf("%s: %w", filename, err))
	}

	var (
		title     string
		haveTitle bool
		statVals  []string
		lastJS    string
	)
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch {
		case n.Data == "title" && !haveTitle:
			title, haveTitle = textOf(n), true
		case n.Data == "script":
			lastJS = textOf(n)
		}
		if hasClass(n, "stat-val") {
			statVals = append(statVals, strings.TrimSpace(textOf(n)))
		}
	})

	if len(statVals) == 0 {
		return nil, nil
	}
	if len(statVals) < 5 {
		return nil, core.WrapError(core.ErrReportUnparsable,
			fmt.Errorf("%s: expected 5 stat values, found %d", filename, len(statVals)))
	}

	curve, err := parseEquity(lastJS)
	if err != nil {
		return nil, core.WrapError(core.ErrReportUnparsable, fmt.Errorf("%s: %w", filename, err))
	}

	category := CategoryFromFilename(filename)
	name := symbolFrom(title, filename)

	return &core.StrategyRecord{
		ID:       strings.ReplaceAll(strings.ToLower(category+"-"+name), " ", "-"),
		Name:     name,
		Category: category,
		Filename: filename,
		Stats: core.Stats{
			NetProfit:    statVals[0],
			WinRate:      statVals[1],
			FinalBalance: statVals[2],
			MaxDrawdown:  statVals[3],
			TotalTrades:  core.DisplayValue(statVals[4]),
		},
		EquityCurve: curve,
	}, nil
}

// symbolFrom strips the report boilerplate from the page title, falling back
// to the second underscore-separated part of the filename.
func symbolFrom(title, filename string) string {
	symbol := strings.ReplaceAll(title, "Strategy Report", "")
	symbol = strings.ReplaceAll(symbol, "Trendline Scalper:", "")
	symbol = strings.TrimSpace(symbol)
	if symbol != "" {
		return symbol
	}
	if parts := strings.Split(filename, "_"); len(parts) > 1 {
		return parts[1]
	}
	return filename
}

func parseEquity(script string) ([]float64, error) {
	m := equityData.FindStringSubmatch(script)
	if m == nil {
		return []float64{}, nil
	}

	fields := strings.Split(m[1], ",")
	curve := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("equity value %q: %w", f, err)
		}
		curve = append(curve, v)
	}
	return curve, nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
