//go:build windows

package console

import (
	"os"

	"golang.org/x/sys/windows"
)

// Init switches the console to UTF-8 and turns on ANSI escape processing for
// stdout and stderr so status glyphs and colors render.
func Init() {
	_ = windows.SetConsoleOutputCP(65001)
	_ = windows.SetConsoleCP(65001)

	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		handle := windows.Handle(f.Fd())
		var mode uint32
		if err := windows.GetConsoleMode(handle, &mode); err == nil {
			_ = windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
		}
	}
}
