package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// crashScreen is finalized before a crash report is printed
var crashScreen atomic.Pointer[tcell.Screen]

func registerCrashScreen(s tcell.Screen) {
	crashScreen.Store(&s)
}

// handleCrash is the unified panic handler that restores the terminal and prints the stack trace
func handleCrash(what string, r any) {
	if r == nil {
		return
	}

	if s := crashScreen.Swap(nil); s != nil {
		(*s).Fini()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31m%s: %v\x1b[0m\n", what, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// goSafe runs fn in a new goroutine with panic recovery
func goSafe(what string, fn func()) {
	go func() {
		defer func() {
			handleCrash(what, recover())
		}()
		fn()
	}()
}
