package platform

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// LogLevel controls which messages reach the console
type LogLevel int

// Log levels, from least to most verbose
const (
	LogLevelQuiet LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

// ANSI SGR sequences; 3x sets the foreground colour
const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
	clearToEOL  = "\033[K"
	errorPrefix = "ERROR: "
	warnPrefix  = "WARNING: "
	infoPrefix  = "INFO: "
	debugPrefix = "DEBUG: "
)

var (
	logLevel = LogLevelInfo
	useColor = false
	logger   = log.New(os.Stderr, "", 0)
)

// InitLogging sets the level and routes log output to stderr, with colours
// only when stderr is a terminal.
func InitLogging(level LogLevel) {
	logLevel = level
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		useColor = true
		logger.SetOutput(colorable.NewColorableStderr())
		return
	}
	useColor = false
	logger.SetOutput(colorable.NewNonColorable(os.Stderr))
}

// SetLogOutput redirects log output to w without colours
func SetLogOutput(w io.Writer) {
	useColor = false
	logger.SetOutput(w)
}

// SetLogLevel changes the active level
func SetLogLevel(level LogLevel) {
	logLevel = level
}

// GetLogLevel returns the active level
func GetLogLevel() LogLevel {
	return logLevel
}

// LevelFromFlags maps the --quiet/--verbose pair to a level; quiet wins
func LevelFromFlags(quiet, verbose bool) LogLevel {
	switch {
	case quiet:
		return LogLevelError
	case verbose:
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// LogGeneral prints an undecorated status line
func LogGeneral(format string, args ...interface{}) {
	if logLevel >= LogLevelInfo {
		logger.Print(formatMessage(format, args...))
	}
}

// LogError prints an error line
func LogError(format string, args ...interface{}) {
	if logLevel >= LogLevelError {
		logger.Print(decorate(errorPrefix, colorRed, formatMessage(format, args...)))
	}
}

// LogWarn prints a warning line
func LogWarn(format string, args ...interface{}) {
	if logLevel >= LogLevelWarning {
		logger.Print(decorate(warnPrefix, colorYellow, formatMessage(format, args...)))
	}
}

// LogInfo prints an informational line
func LogInfo(format string, args ...interface{}) {
	if logLevel >= LogLevelInfo {
		logger.Print(decorate(infoPrefix, colorGreen, formatMessage(format, args...)))
	}
}

// LogDebug prints a debug line
func LogDebug(format string, args ...interface{}) {
	if logLevel >= LogLevelDebug {
		logger.Print(decorate(debugPrefix, colorCyan, formatMessage(format, args...)))
	}
}

func formatMessage(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func decorate(prefix, color, msg string) string {
	if !useColor {
		return prefix + msg
	}
	return prefix + color + msg + colorReset + clearToEOL
}
