//go:build !windows

package mover

import "golang.org/x/sys/unix"

var errCrossDevice error = unix.EXDEV
