//go:build !windows

package mover

import "golang.org/x/sys/unix"

// dirWritable reports whether the current user may create and remove
// entries in dir
func dirWritable(dir string) bool {
	return unix.Access(dir, unix.W_OK|unix.X_OK) == nil
}
