package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/vitalit/internal/logger"
)

var (
	// ErrNotInitialized is returned when the data store has not been created yet
	ErrNotInitialized = errors.New("storage not initialized, run 'vitalit init' first")
	// ErrAccessDenied is returned by commands when the active plan does not cover the content
	ErrAccessDenied = errors.New("content requires an active plan")
	// ErrNotFound is returned when a catalog item referenced by a command does not exist
	ErrNotFound = errors.New("not found")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrAccessDenied) {
		return fmt.Sprintf("Error: %v (activate one with 'vitalit plan activate')", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }

// New returns an error that formats as the given text.
func New(text string) error { return errors.New(text) }
