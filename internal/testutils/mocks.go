package testutils

import (
	"context"
	"sync"

	"github.com/fbtool/launcher/internal/execx"
)

// Response is a scripted reply for MockRunner.
type Response struct {
	Result execx.Result
	Err    error
}

// MockRunner answers commands from a script keyed by Command.String() and
// records every call. Unscripted commands succeed with empty output unless
// RunFunc is set.
type MockRunner struct {
	mu        sync.Mutex
	Responses map[string]Response
	RunFunc   func(ctx context.Context, cmd execx.Command) (execx.Result, error)
	Calls     []execx.Command
}

func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]Response)}
}

// On scripts the reply for the command line key, e.g. "git status -uno".
func (m *MockRunner) On(key string, res execx.Result, err error) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[key] = Response{Result: res, Err: err}
	return m
}

func (m *MockRunner) Run(ctx context.Context, cmd execx.Command) (execx.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, cmd)
	resp, ok := m.Responses[cmd.String()]
	m.mu.Unlock()

	if ok {
		return resp.Result, resp.Err
	}
	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd)
	}
	return execx.Result{}, nil
}

// CallStrings returns the recorded command lines in order.
func (m *MockRunner) CallStrings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.String())
	}
	return out
}

// Called reports whether the command line key was run.
func (m *MockRunner) Called(key string) bool {
	for _, c := range m.CallStrings() {
		if c == key {
			return true
		}
	}
	return false
}
