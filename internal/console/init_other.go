//go:build !windows

package console

// Init is a no-op outside Windows; terminals there already speak UTF-8 and ANSI.
func Init() {}
