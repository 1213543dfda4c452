// Package logger is a small leveled logger used at the program assembly
// boundary. The engine packages themselves stay silent: they are pure
// functions and report failures as errors.
package logger

import (
	"fmt"
	"log"
	"os"
)

// Level is a logging severity threshold.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var (
	std      = log.New(os.Stderr, "", 0)
	minLevel = INFO
)

// SetLevel sets the minimum level that will be written.
func SetLevel(l Level) {
	minLevel = l
}

func logf(l Level, tag, format string, args ...any) {
	if l < minLevel {
		return
	}
	std.Printf("%s %s", tag, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) { logf(DEBUG, "DEBUG", format, args...) }
func Infof(format string, args ...any)  { logf(INFO, "INFO ", format, args...) }
func Warnf(format string, args ...any)  { logf(WARN, "WARN ", format, args...) }
func Errorf(format string, args ...any) { logf(ERROR, "ERROR", format, args...) }
