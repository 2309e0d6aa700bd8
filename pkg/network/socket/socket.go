package socket

import (
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"
	"syscall"
)

const listenAttempts = 42

// Listen creates a TCP listener on a given port.
// The proto param supports one of these values: tcp, tcp4, tcp6.
func Listen(proto string, port int) (net.Listener, error) {
	switch proto {
	case "tcp", "tcp4", "tcp6":
		l, err := net.ListenTCP(proto, &net.TCPAddr{Port: port})
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, fmt.Errorf("unsupported proto %q", proto)
}

// ListenPortRoll creates a TCP listener on the next free port.
// See: Listen.
func ListenPortRoll(proto string, port int) (net.Listener, error) {
	l, err := Listen(proto, port)
	if err == nil {
		return l, nil
	}
	if IsPortBusyError(err) {
		for i := port + 1; i < port+listenAttempts; i++ {
			if l, err := Listen(proto, i); err == nil {
				return l, nil
			}
		}
		return nil, errors.New("no available ports")
	}
	return nil, err
}

// IsPortBusyError tests if the given error is one of
// the port busy errors.
func IsPortBusyError(err error) bool {
	var eOsSyscall *os.SyscallError
	if !errors.As(err, &eOsSyscall) {
		return false
	}
	var errErrno syscall.Errno
	if !errors.As(eOsSyscall, &errErrno) {
		return false
	}
	if errErrno == syscall.EADDRINUSE {
		return true
	}
	const WSAEADDRINUSE = 10048
	return runtime.GOOS == "windows" && errErrno == WSAEADDRINUSE
}
