//go:build windows

package arch

import (
	"errors"
	"os"
)

func hostMachine() (string, error) {
	// Set for 32-bit processes running under WOW64; names the native CPU.
	if m := os.Getenv("PROCESSOR_ARCHITEW6432"); m != "" {
		return m, nil
	}
	if m := os.Getenv("PROCESSOR_ARCHITECTURE"); m != "" {
		return m, nil
	}
	return "", errors.New("PROCESSOR_ARCHITECTURE is not set")
}
