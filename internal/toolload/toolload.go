// Package toolload opens the compiled tool and hands control to it.
//
// The tool is a Go plugin exporting two symbols:
//
//	func CheckSubscription() ...   // capability gate, must exist
//	func Main()                    // or func Main() error
//
// CheckSubscription is looked up but never called here; the tool calls it
// itself. Its presence marks a compatible build.
package toolload

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/fbtool/launcher/tui"
	"go.uber.org/zap"
)

const (
	CapabilitySymbol = "CheckSubscription"
	EntrySymbol      = "Main"
)

var (
	ErrUnsupported = errors.New("loading compiled modules is not supported on this platform")
	ErrImport      = errors.New("cannot load module")
	// ErrMissingCapability means the module lacks a required symbol.
	ErrMissingCapability = errors.New("module doesn't have required functions")
	ErrNotConformant     = errors.New("module entry point has an unexpected signature")
	ErrPanic             = errors.New("module panicked")
)

// Module is an opened compiled module.
type Module interface {
	Lookup(name string) (any, error)
}

// Loader opens compiled modules.
type Loader interface {
	Open(path string) (Module, error)
}

// EntryPoint adapts the supported Main signatures to one shape.
func EntryPoint(sym any) (func() error, error) {
	switch fn := sym.(type) {
	case func():
		return func() error { fn(); return nil }, nil
	case func() error:
		return fn, nil
	case *func():
		if fn == nil || *fn == nil {
			return nil, ErrNotConformant
		}
		return EntryPoint(*fn)
	case *func() error:
		if fn == nil || *fn == nil {
			return nil, ErrNotConformant
		}
		return EntryPoint(*fn)
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotConformant, sym)
	}
}

type Launcher struct {
	Loader Loader
	Path   string
	Out    io.Writer
	Logger *zap.Logger
	// OnError observes the error behind a failed Run.
	OnError func(error)
}

// Launch opens the module, checks its capability symbol and runs Main. A
// panic inside the module is returned as ErrPanic.
func (l *Launcher) Launch() (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.logger().Error("tool panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	if l.Loader == nil {
		return fmt.Errorf("%w: %w", ErrImport, ErrUnsupported)
	}

	mod, err := l.Loader.Open(l.Path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrImport, l.Path, err)
	}

	if _, err := mod.Lookup(CapabilitySymbol); err != nil {
		return fmt.Errorf("%w: %s", ErrMissingCapability, CapabilitySymbol)
	}

	sym, err := mod.Lookup(EntrySymbol)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingCapability, EntrySymbol)
	}

	entry, err := EntryPoint(sym)
	if err != nil {
		return err
	}

	l.logger().Info("starting tool", zap.String("path", l.Path))
	if err := entry(); err != nil {
		return fmt.Errorf("tool exited with error: %w", err)
	}
	return nil
}

// Run calls Launch and reports the outcome on Out.
func (l *Launcher) Run() bool {
	err := l.Launch()
	if err == nil {
		return true
	}

	l.logger().Error("tool failed", zap.String("path", l.Path), zap.Error(err))
	if l.OnError != nil {
		l.OnError(err)
	}
	switch {
	case errors.Is(err, ErrImport):
		l.println(tui.RenderErrorMessage(fmt.Sprintf("importing main module: %v", err)))
		l.println(tui.RenderWarningSimple(fmt.Sprintf("Make sure '%s' exists in the working directory", l.Path)))
	case errors.Is(err, ErrMissingCapability), errors.Is(err, ErrNotConformant):
		l.println(tui.RenderErrorMessage(fmt.Sprintf("main %v", err)))
	default:
		l.println(tui.RenderErrorMessage(fmt.Sprintf("running main module: %v", err)))
	}
	return false
}

func (l *Launcher) println(s string) {
	if l.Out == nil {
		return
	}
	fmt.Fprintln(l.Out, s)
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
