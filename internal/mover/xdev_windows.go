//go:build windows

package mover

import (
	"errors"

	"golang.org/x/sys/windows"
)

// IsCrossDeviceError reports whether err is a rename failure caused by the
// source and destination living on different volumes
func IsCrossDeviceError(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
