//go:build windows

package types

import (
	"errors"
	"syscall"
)

// Win32 error codes that have no portable errno equivalent.
const (
	errorHandleDiskFull    syscall.Errno = 39
	errorDiskFull          syscall.Errno = 112
	errorDiskQuotaExceeded syscall.Errno = 1295
	errorNotEnoughQuota    syscall.Errno = 1816
)

func classifyErrno(err error) (ErrorKind, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return KindOther, false
	}
	switch errno {
	case errorDiskFull, errorHandleDiskFull:
		return KindDiskFull, true
	case errorDiskQuotaExceeded, errorNotEnoughQuota:
		return KindQuotaExceeded, true
	}
	return KindOther, false
}
