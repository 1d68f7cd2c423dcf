// Package arch decides whether the host can run 64-bit builds of the tool.
package arch

import (
	"math"
	"strings"
	"unsafe"
)

// Known64Bit lists machine identifiers that imply a 64-bit CPU. Matching is
// by case-insensitive substring.
var Known64Bit = []string{"x86_64", "amd64", "x64", "arm64", "aarch64", "armv8", "arm64-v8a"}

const addressable32 = uint64(1) << 32

// Report carries the signals gathered by Check.
type Report struct {
	Machine       string
	MatchedName   bool
	MaxSize       uint64
	PointerBits   int
	PointerChecked bool
	Is64Bit       bool
}

// Validator combines three independent signals. Any positive signal is enough.
type Validator struct {
	Machine     func() (string, error)
	MaxSize     func() uint64
	PointerBits func() (int, error)
}

// NewHostValidator inspects the running process and operating system.
func NewHostValidator() *Validator {
	return &Validator{
		Machine:     hostMachine,
		MaxSize:     func() uint64 { return uint64(math.MaxInt) },
		PointerBits: func() (int, error) { return int(unsafe.Sizeof(uintptr(0))) * 8, nil },
	}
}

// MatchesKnown64Bit reports whether machine contains a known 64-bit identifier.
func MatchesKnown64Bit(machine string) bool {
	m := strings.ToLower(strings.TrimSpace(machine))
	if m == "" {
		return false
	}
	for _, id := range Known64Bit {
		if strings.Contains(m, id) {
			return true
		}
	}
	return false
}

func (v *Validator) Check() Report {
	var r Report

	if v.Machine != nil {
		if m, err := v.Machine(); err == nil {
			r.Machine = strings.ToLower(strings.TrimSpace(m))
		}
	}
	r.MatchedName = MatchesKnown64Bit(r.Machine)
	r.Is64Bit = r.MatchedName

	if !r.Is64Bit && v.MaxSize != nil {
		r.MaxSize = v.MaxSize()
		r.Is64Bit = r.MaxSize > addressable32
	}

	// The pointer size can only promote the result.
	if v.PointerBits != nil {
		if bits, err := v.PointerBits(); err == nil {
			r.PointerBits = bits
			r.PointerChecked = true
			if bits == 64 {
				r.Is64Bit = true
			}
		}
	}

	return r
}
