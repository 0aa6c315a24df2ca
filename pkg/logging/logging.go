package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogFile overrides the log file location
const EnvLogFile = "VUEGEN_LOG_FILE"

// SetupLogger configures the global logger for a vuegen run. Output goes to
// stderr and to a log file under the XDG state directory, so a long watch
// session keeps a history of what was generated.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(levelForVerbosity(verbosity))

	// Watch sessions run for hours; wall-clock seconds are more useful than
	// the kitchen format
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(os.Stderr),
	}

	writers := []io.Writer{consoleWriter}

	// The file gets plain JSON lines
	logFile := getLogFilePath()
	logFileHandle, err := setupLogFile(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	// Only now is there a logger to report the missing file with
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Caller information for debug and trace levels
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().
		Int("verbosity", verbosity).
		Str("level", zerolog.GlobalLevel().String()).
		Str("logFile", logFile).
		Msg("Logger initialized")
}

// levelForVerbosity maps the count of -v flags to a level. Without flags only
// warnings and generation failures are shown.
func levelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// GetLogger returns a logger tagged with the component name
// (e.g. "pipeline", "filesystem.watcher")
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// BatchSummary is what gets logged once a batch of changes was handled
type BatchSummary struct {
	Changes  int
	Matches  int
	Written  int
	Failures int
	Duration time.Duration
}

// LogBatch logs the outcome of one change batch. Batches with failures are
// logged at warn level so they show without -v.
func LogBatch(logger zerolog.Logger, s BatchSummary) {
	event := logger.Debug()
	if s.Failures > 0 {
		event = logger.Warn()
	}
	event.
		Int("changes", s.Changes).
		Int("matches", s.Matches).
		Int("written", s.Written).
		Int("failures", s.Failures).
		Dur("duration", s.Duration).
		Msg("Batch processed")
}

// getLogFilePath returns the path to the log file.
// VUEGEN_LOG_FILE wins, then XDG_STATE_HOME, then the XDG default state dir.
func getLogFilePath() string {
	if override := os.Getenv(EnvLogFile); override != "" {
		return override
	}

	// xdg caches the environment at init, so read the variable directly first
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return "vuegen.log"
	}
	return filepath.Join(stateHome, "vuegen", "vuegen.log")
}

// setupLogFile opens logPath for appending, creating its directory
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Append so consecutive runs share one history
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
