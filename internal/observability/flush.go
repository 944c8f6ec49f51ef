package observability

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// FlushTelemetry runs before process exit: it writes the metrics textfile when
// textfile is set, then flushes the logger. Both steps run even if one fails.
// A textfile failure is also logged before the flush.
func FlushTelemetry(ctx context.Context, logger *zap.Logger, textfile string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	if textfile != "" {
		if werr := WriteTextfile(textfile); werr != nil {
			err = multierr.Append(err, fmt.Errorf("write metrics textfile: %w", werr))
			if logger != nil {
				logger.Error("write metrics textfile", zap.String("path", textfile), zap.Error(werr))
			}
		}
	}
	if logger != nil {
		if serr := logger.Sync(); serr != nil {
			err = multierr.Append(err, fmt.Errorf("flush logs: %w", serr))
		}
	}
	return err
}
