package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/newthinker/stratdeck/internal/core"
	"github.com/newthinker/stratdeck/internal/metrics"
	"github.com/newthinker/stratdeck/internal/storage/artifact"
	"go.uber.org/zap"
)

// Options configures an ingest run.
type Options struct {
	ReportsPrefix string // where the *.html reports live
	OutputFile    string // where data.json is written
}

// Result summarises an ingest run.
type Result struct {
	Scanned int `json:"scanned"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Ingester parses every report under a prefix and publishes data.json.
type Ingester struct {
	store   artifact.Store
	logger  *zap.Logger
	metrics *metrics.Registry
}

// New creates an Ingester. reg may be nil.
func New(store artifact.Store, logger *zap.Logger, reg *metrics.Registry) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingester{store: store, logger: logger, metrics: reg}
}

// Run parses the reports in name order and writes the records that parsed.
// A report that fails to parse is logged and left out; only listing and
// writing errors abort the run. A prefix holding no reports fails with
// core.ErrDataUnavailable and leaves the output file untouched.
func (in *Ingester) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result

	paths, err := in.store.List(ctx, opts.ReportsPrefix)
	if err != nil {
		return res, core.WrapError(core.ErrDataUnavailable, fmt.Errorf("listing reports: %w", err))
	}

	// Only reports directly under the prefix are published; cards link to
	// reports/<filename>, which cannot address nested files.
	dir := path.Clean(opts.ReportsPrefix)
	var reports []string
	for _, p := range paths {
		if strings.HasSuffix(p, ".html") && path.Dir(p) == dir {
			reports = append(reports, p)
		}
	}
	sort.Strings(reports)
	res.Scanned = len(reports)
	if res.Scanned == 0 {
		// Keep the published data file rather than replacing it with nothing.
		return res, core.WrapError(core.ErrDataUnavailable,
			fmt.Errorf("no reports under %q", opts.ReportsPrefix))
	}
	in.logger.Info("scanning reports",
		zap.String("prefix", opts.ReportsPrefix),
		zap.Int("files", len(reports)),
	)

	records := make([]core.StrategyRecord, 0, len(reports))
	for _, p := range reports {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, err := in.parse(ctx, p)
		switch {
		case err != nil:
			res.Failed++
			in.record("error")
			in.logger.Error("report failed", zap.String("file", p), zap.Error(err))
		case rec == nil:
			res.Skipped++
			in.record("skipped")
			in.logger.Debug("report has no stats", zap.String("file", p))
		default:
			res.Parsed++
			in.record("parsed")
			records = append(records, *rec)
			in.logger.Info("report parsed", zap.String("file", p), zap.String("name", rec.Name))
		}
	}

	out, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return res, fmt.Errorf("encoding records: %w", err)
	}
	if err := in.store.Write(ctx, opts.OutputFile, out); err != nil {
		return res, fmt.Errorf("writing %s: %w", opts.OutputFile, err)
	}

	in.logger.Info("data file updated",
		zap.String("file", opts.OutputFile),
		zap.Int("records", len(records)),
	)
	return res, nil
}

func (in *Ingester) parse(ctx context.Context, p string) (*core.StrategyRecord, error) {
	content, err := in.store.Read(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return ParseReport(path.Base(p), content)
}

func (in *Ingester) record(status string) {
	if in.metrics != nil {
		in.metrics.RecordReportIngested(status)
	}
}
