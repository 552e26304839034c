package rtscene

import (
	"log/slog"

	"github.com/gogpu/rtscene/internal/logger"
)

// SetLogger configures the logger for rtscene and all its sub-packages.
// By default nothing is logged. Pass nil to restore silent behavior.
//
// Log levels used by rtscene:
//   - [slog.LevelDebug]: buffer allocations, refreshes, summary uploads
//   - [slog.LevelInfo]: device opened, session created
//   - [slog.LevelWarn]: non-fatal issues such as writes to unknown resources
//
// Example:
//
//	rtscene.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger used by rtscene.
func Logger() *slog.Logger {
	return logger.L()
}

// loggerSetter is implemented by devices that accept their own logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a device if it implements
// loggerSetter.
func propagateLogger(dev any, l *slog.Logger) {
	if ls, ok := dev.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
