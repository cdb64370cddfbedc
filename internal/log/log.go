// Package log prints coloured status lines for the command line tools.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed).FprintfFunc()
	yellow = color.New(color.FgYellow).FprintfFunc()
	blue   = color.New(color.FgBlue).FprintfFunc()

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects all messages to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func emit(print func(io.Writer, string, ...interface{}), format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	print(out, format+"\n", a...)
}

// ErrorMsg prints an error message in red.
func ErrorMsg(format string, a ...interface{}) {
	emit(red, "[!] Error: "+format, a...)
}

// WarnMsg prints a warning in yellow.
func WarnMsg(format string, a ...interface{}) {
	emit(yellow, "[-] "+format, a...)
}

// InfoMsg prints an informational message in blue.
func InfoMsg(format string, a ...interface{}) {
	emit(blue, "[+] "+format, a...)
}
