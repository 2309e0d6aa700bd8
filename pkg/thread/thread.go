// Package thread pins SDL work to the main OS thread, which macOS
// requires for window and event handling.
// See: https://github.com/golang/go/wiki/LockOSThread
package thread

import (
	"runtime"

	"github.com/faiface/mainthread"
)

var isMacOs = runtime.GOOS == "darwin"

// MainWrapMaybe runs f while serving main thread calls.
// Enabled for macOS only, elsewhere f runs directly.
func MainWrapMaybe(f func()) {
	if isMacOs {
		mainthread.Run(f)
	} else {
		f()
	}
}

// MainMaybe calls a function on the main thread.
// Enabled for macOS only.
func MainMaybe(f func()) {
	if isMacOs {
		mainthread.Call(f)
	} else {
		f()
	}
}
