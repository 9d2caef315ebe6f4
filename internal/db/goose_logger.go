package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
)

// gooseLogger routes goose output through slog so it follows the configured
// level and format.
type gooseLogger struct {
	logger *slog.Logger
}

var _ goose.Logger = gooseLogger{}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(strings.TrimPrefix(fmt.Sprintf(format, v...), "goose: ")), "component", "goose")
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
	os.Exit(1)
}

func newGooseLogger(logger *slog.Logger) goose.Logger {
	if logger == nil {
		return goose.NopLogger()
	}
	return gooseLogger{logger: logger}
}
