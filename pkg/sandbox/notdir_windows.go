//go:build windows

package sandbox

import "syscall"

var syscallNotDir error = syscall.ERROR_PATH_NOT_FOUND
