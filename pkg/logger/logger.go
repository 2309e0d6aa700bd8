package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var pid = os.Getpid()

type Logger struct {
	logger *zerolog.Logger
}

func level(isDebug bool) zerolog.Level {
	if isDebug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// New creates a JSON logger writing to stderr.
func New(isDebug bool) *Logger {
	zerolog.SetGlobalLevel(level(isDebug))
	logger := zerolog.New(os.Stderr).With().Timestamp().Int("pid", pid).Logger()
	return &Logger{logger: &logger}
}

// NewConsole creates a human friendly logger.
// The tag param is printed in front of every message.
func NewConsole(isDebug bool, tag string, noColor bool) *Logger {
	zerolog.SetGlobalLevel(level(isDebug))
	zerolog.TimeFieldFormat = time.RFC3339Nano
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.0000", NoColor: noColor,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"s",
			"c",
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"s", "c"},
	}
	if output.NoColor {
		output.FormatMessage = func(i any) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%v", i)
		}
	}
	logger := zerolog.New(output).With().
		Str("s", tag).
		Str("c", " ").
		Timestamp().Logger()
	return &Logger{logger: &logger}
}

func Default() *Logger { return &Logger{logger: &log.Logger} }

// Nop returns a logger that drops everything, handy in tests.
func Nop() *Logger {
	l := zerolog.Nop()
	return &Logger{logger: &l}
}

// Output duplicates the logger and sets w as its output.
func (l *Logger) Output(w io.Writer) *Logger {
	logger := l.logger.Output(w)
	return &Logger{logger: &logger}
}

// With creates a child logger with the field added to its context.
func (l *Logger) With() zerolog.Context { return l.logger.With() }

// Extend adds some additional context to the existing logger.
func (l *Logger) Extend(ctx zerolog.Context) *Logger {
	logger := ctx.Logger()
	return &Logger{logger: &logger}
}

// Tag returns a child logger printed with a different source tag.
func (l *Logger) Tag(tag string) *Logger { return l.Extend(l.With().Str("s", tag)) }

func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.logger.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }

// Fatal starts a new message with fatal level. The os.Exit(1) function
// is called by the Msg method.
func (l *Logger) Fatal() *zerolog.Event { return l.logger.Fatal() }
