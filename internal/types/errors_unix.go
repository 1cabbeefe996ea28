//go:build unix

package types

import (
	"errors"
	"syscall"
)

func classifyErrno(err error) (ErrorKind, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return KindOther, false
	}
	switch errno {
	case syscall.ENOSPC:
		return KindDiskFull, true
	case syscall.EDQUOT:
		return KindQuotaExceeded, true
	}
	return KindOther, false
}
