//go:build !windows

package sandbox

import "syscall"

// syscallNotDir is returned when a path component is a regular file.
var syscallNotDir error = syscall.ENOTDIR
