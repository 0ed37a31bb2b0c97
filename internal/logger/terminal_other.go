//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || aix || windows)

package logger

func isTerminal(uintptr) bool { return false }
