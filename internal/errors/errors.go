package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/conquista/internal/logger"
)

var (
	// ErrDuplicateUser is returned when registering a username that is already taken
	ErrDuplicateUser = errors.New("user already exists")
	// ErrNotFound covers unknown records and failed logins alike
	ErrNotFound = errors.New("not found")
	// ErrStorageFailure wraps any underlying read or write error
	ErrStorageFailure = errors.New("storage failure")
)

// Storage wraps err as a storage failure for the named operation.
// Both ErrStorageFailure and err remain matchable with errors.Is.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
