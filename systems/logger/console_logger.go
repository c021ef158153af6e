// Package logger contains system loggers implementations.
package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"go-home.io/x/ttlock/plugins/common"
)

// Level colors.
var levelColors = map[string]color.Attribute{
	"DBG": color.FgCyan,
	"INF": color.FgGreen,
	"WRN": color.FgYellow,
	"ERR": color.FgRed,
}

// Default console logger.
type consoleLogger struct {
}

// NewConsoleLogger constructs a new console logger.
func NewConsoleLogger() common.ILoggerProvider {
	return &consoleLogger{}
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	p.print("DBG", msg, fields...)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.print("INF", msg, fields...)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.print("WRN", msg, fields...)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	p.print("ERR", msg, append(fields, common.LogErrorToken, err.Error())...)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	p.print("ERR", msg, append(fields, common.LogErrorToken, err.Error())...)
	os.Exit(1)
}

// Flush don't needed for a console logger.
func (p *consoleLogger) Flush() {
}

// Renders a single log line. Fields are sorted so repeated messages
// are easy to eyeball-diff.
func (p *consoleLogger) print(level string, msg string, fields ...string) {
	line := fmt.Sprintf("%s %s   %s", time.Now().Local().Format(time.StampMilli), level, msg)

	pairs := fieldPairs(fields...)
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, pairs[k]))
	}

	if len(parts) > 0 {
		line = fmt.Sprintf("%s   [%s]", line, strings.Join(parts, " "))
	}

	color.New(levelColors[level]).Println(line) // nolint: gosec, errcheck
}

// Folds a flat key-value slice into a map, a trailing key
// without a value is dropped.
func fieldPairs(fields ...string) map[string]string {
	fLen := len(fields)
	result := make(map[string]string, int(fLen/2))
	for ii := 0; ii+1 < fLen; ii += 2 {
		result[fields[ii]] = fields[ii+1]
	}

	return result
}
