package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel represents the level of logging verbosity
type LogLevel int

const (
	// LevelQuiet suppresses all output except errors
	LevelQuiet LogLevel = iota
	// LevelNormal shows standard progress
	LevelNormal
	// LevelVerbose shows detailed information about each step
	LevelVerbose
	// LevelDebug shows all debugging information
	LevelDebug
)

var (
	// CurrentLogLevel is the global log level setting
	CurrentLogLevel LogLevel = LevelNormal

	logger = newLogger(os.Stderr, LevelNormal)
)

func init() {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func newLogger(w io.Writer, level LogLevel) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: w != io.Writer(os.Stderr)}
	return zerolog.New(out).Level(level.zerolog()).With().Timestamp().Logger()
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelQuiet:
		return zerolog.ErrorLevel
	case LevelVerbose:
		return zerolog.DebugLevel
	case LevelDebug:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// String returns the flag value for the level
func (l LogLevel) String() string {
	switch l {
	case LevelQuiet:
		return "quiet"
	case LevelVerbose:
		return "verbose"
	case LevelDebug:
		return "debug"
	default:
		return "normal"
	}
}

// SetLogLevel sets the global logging level
func SetLogLevel(level LogLevel) {
	CurrentLogLevel = level
	logger = logger.Level(level.zerolog())
}

// SetLogOutput redirects log output, mostly for tests
func SetLogOutput(w io.Writer) {
	logger = newLogger(w, CurrentLogLevel)
}

// Logger returns the underlying structured logger
func Logger() *zerolog.Logger {
	return &logger
}

// LogLevelFromString converts a string level name to LogLevel
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "quiet", "q":
		return LevelQuiet
	case "normal", "n":
		return LevelNormal
	case "verbose", "v":
		return LevelVerbose
	case "debug", "d":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// LogError logs an error message (always shown)
func LogError(format string, args ...interface{}) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

// LogInfo logs an informational message at Normal+ level
func LogInfo(format string, args ...interface{}) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// LogSuccess logs a success message at Normal+ level
func LogSuccess(format string, args ...interface{}) {
	logger.Info().Bool("ok", true).Msg(fmt.Sprintf(format, args...))
}

// LogVerbose logs a message at Verbose+ level
func LogVerbose(format string, args ...interface{}) {
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// LogDebug logs a debug message at Debug level
func LogDebug(format string, args ...interface{}) {
	logger.Trace().Msg(fmt.Sprintf(format, args...))
}

// LogWarning logs a warning message at Normal+ level
func LogWarning(format string, args ...interface{}) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}
