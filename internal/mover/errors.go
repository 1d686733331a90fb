package mover

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrorReason categorizes why a move failed
type ErrorReason int

const (
	ReasonPermissionDenied ErrorReason = iota
	ReasonFileInUse
	ReasonNotFound
	ReasonCollisionExhausted
	ReasonCopyMismatch
	ReasonInvalidPath
	ReasonUnknown
)

// String returns a human-readable error reason
func (r ErrorReason) String() string {
	switch r {
	case ReasonPermissionDenied:
		return "Permission denied"
	case ReasonFileInUse:
		return "File is in use"
	case ReasonNotFound:
		return "File not found"
	case ReasonCollisionExhausted:
		return "No free destination name"
	case ReasonCopyMismatch:
		return "Copy size mismatch"
	case ReasonInvalidPath:
		return "Invalid path"
	case ReasonUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// MoveError describes the failure that aborted an apply
type MoveError struct {
	Path     string
	Op       string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *MoveError) Error() string {
	if e.Original == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s (%v)", e.Op, e.Path, e.Reason, e.Original)
}

// Unwrap returns the underlying error
func (e *MoveError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *MoveError) UserMessage() string {
	switch e.Reason {
	case ReasonPermissionDenied:
		return fmt.Sprintf("⚠️  Permission denied: %s", e.Path)
	case ReasonFileInUse:
		return fmt.Sprintf("⚠️  File is being used: %s (close the application and try again)", e.Path)
	case ReasonNotFound:
		return fmt.Sprintf("ℹ️  Missing: %s", e.Path)
	case ReasonCollisionExhausted:
		return fmt.Sprintf("❌ Too many files named like %s in the destination folder", e.Path)
	case ReasonCopyMismatch:
		return fmt.Sprintf("❌ Copy of %s is incomplete, source left in place", e.Path)
	case ReasonInvalidPath:
		return fmt.Sprintf("❌ Invalid or unsafe path: %s", e.Path)
	default:
		return fmt.Sprintf("❌ Error moving %s: %v", e.Path, e.Original)
	}
}

// CategorizeError analyzes an error and returns a categorized MoveError
func CategorizeError(op, path string, err error) *MoveError {
	if err == nil {
		return nil
	}

	moveErr := &MoveError{
		Path:     path,
		Op:       op,
		Original: err,
		Reason:   ReasonUnknown,
	}

	var existing *MoveError
	if errors.As(err, &existing) {
		return existing
	}

	if os.IsNotExist(err) {
		moveErr.Reason = ReasonNotFound
		return moveErr
	}
	if os.IsPermission(err) {
		moveErr.Reason = ReasonPermissionDenied
		return moveErr
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			moveErr.Reason = ReasonPermissionDenied
		case syscall.EBUSY, syscall.ETXTBSY:
			moveErr.Reason = ReasonFileInUse
		case syscall.ENOENT:
			moveErr.Reason = ReasonNotFound
		case syscall.ENAMETOOLONG, syscall.EINVAL:
			moveErr.Reason = ReasonInvalidPath
		}
	}

	return moveErr
}
