package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weatherman/internal/observability"
	"github.com/kjstillabower/weatherman/internal/parser"
	"github.com/kjstillabower/weatherman/internal/store"
)

// ErrDirectory is returned when the data directory is missing or cannot be listed.
var ErrDirectory = errors.New("data directory unavailable")

// Loader parses every entry of a data directory into a store.Set.
type Loader struct {
	parser *parser.Parser
	logger *zap.Logger
}

// New creates a Loader. A nil logger discards file-level warnings.
func New(p *parser.Parser, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{parser: p, logger: logger}
}

// Load parses each entry of dir, in name order, into a Store keyed by the entry name.
// Subdirectories are not descended into and no entry is filtered by extension.
//
// A missing or unlistable dir returns an empty Set and an error wrapping ErrDirectory.
// An entry that cannot be opened is logged and left out. A file that fails mid-parse
// keeps the readings parsed before the failure; the failure is logged and the scan
// continues. Cancelling ctx stops the scan between files and returns what was loaded.
func (l *Loader) Load(ctx context.Context, dir string) (*store.Set, error) {
	set := store.NewSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Error("read data directory", zap.String("dir", dir), zap.Error(err))
		return set, fmt.Errorf("%w: %s: %v", ErrDirectory, dir, err)
	}

	// os.ReadDir returns entries sorted by name.
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		name := e.Name()
		path := filepath.Join(dir, name)

		start := time.Now()
		st, stats, perr := l.parser.ParseFile(path)
		elapsed := time.Since(start)

		switch {
		case st == nil:
			observability.RecordFileLoaded(observability.FileStatusUnreadable, 0, 0, elapsed)
			l.logger.Warn("skipping unreadable entry", zap.String("file", name), zap.Error(perr))
			continue
		case perr != nil:
			observability.RecordFileLoaded(observability.FileStatusPartial, stats.Readings, stats.Skipped, elapsed)
			l.logger.Warn("file parsed partially",
				zap.String("file", name),
				zap.Int("readings", st.Len()),
				zap.Error(perr),
			)
		default:
			observability.RecordFileLoaded(observability.FileStatusOK, stats.Readings, stats.Skipped, elapsed)
			l.logger.Debug("file parsed",
				zap.String("file", name),
				zap.Int("readings", st.Len()),
				zap.Int("skipped", stats.Skipped),
				zap.Duration("duration", elapsed),
			)
		}
		set.Put(name, st)
	}

	l.logger.Info("data directory loaded",
		zap.String("dir", dir),
		zap.Int("files", set.Len()),
		zap.Int("readings", set.Readings()),
	)
	return set, nil
}
