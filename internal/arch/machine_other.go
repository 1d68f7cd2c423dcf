//go:build !unix && !windows

package arch

import "runtime"

func hostMachine() (string, error) {
	return runtime.GOARCH, nil
}
