// cmd/benchlogcli/logs.go
package benchlogcli

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mwiater/benchlog/internal/benchlog"
	"github.com/mwiater/benchlog/internal/report"
)

// newParser returns a parser configured from the loaded configuration.
func newParser() *benchlog.Parser {
	return benchlog.New(appConfig.ParserOptions(lg))
}

// parseLogs parses every path in order. Files that fail are left out of the
// aggregator and their errors combined; callers report what did parse and
// then return the combined error.
func parseLogs(paths []string) (*report.Aggregator, error) {
	p := newParser()
	agg := report.NewAggregator()
	var errs error
	for _, path := range paths {
		src, err := benchlog.FileSource(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		res, err := p.Parse(src)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}
		lg.Info("parsed log",
			zap.String("source", path),
			zap.Int("records", len(res.Records)),
			zap.Int("blocks", len(res.Blocks)),
		)
		agg.Add(res)
	}
	if errs != nil && len(agg.Sources()) > 0 {
		lg.Warn("some logs failed to parse; reporting the rest", zap.Error(errs))
	}
	return agg, errs
}

