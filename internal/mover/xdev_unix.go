//go:build !windows

package mover

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsCrossDeviceError reports whether err is a rename failure caused by the
// source and destination living on different filesystems
func IsCrossDeviceError(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
