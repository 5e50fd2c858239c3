package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// MockCompiler stands in for the TypeScript toolchain. By default it copies
// every source to a sibling .js file and writes an empty .d.ts next to it.
type MockCompiler struct {
	compileFunc func(paths []string) error
	calls       []MockCompileCall
	mu          sync.RWMutex
}

type MockCompileCall struct {
	Paths     []string  `json:"paths"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMockCompiler() *MockCompiler {
	return &MockCompiler{
		calls:       make([]MockCompileCall, 0),
		compileFunc: copyToJS,
	}
}

// NewFailingCompiler returns a MockCompiler that emits nothing and fails
// every call with err.
func NewFailingCompiler(err error) *MockCompiler {
	mc := NewMockCompiler()
	mc.SetCompileFunc(func([]string) error { return err })
	return mc
}

func (mc *MockCompiler) SetCompileFunc(fn func(paths []string) error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.compileFunc = fn
}

func (mc *MockCompiler) Compile(ctx context.Context, paths []string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	call := MockCompileCall{
		Paths:     append([]string(nil), paths...),
		Timestamp: time.Now(),
	}

	err := ctx.Err()
	if err == nil {
		err = mc.compileFunc(paths)
	}
	if err != nil {
		call.Error = err.Error()
	}

	mc.calls = append(mc.calls, call)
	return err
}

func (mc *MockCompiler) GetCalls() []MockCompileCall {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	calls := make([]MockCompileCall, len(mc.calls))
	copy(calls, mc.calls)
	return calls
}

func (mc *MockCompiler) GetCallCount() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.calls)
}

func copyToJS(paths []string) error {
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("mock compile: %w", err)
		}
		base := strings.TrimSuffix(p, ".ts")
		if err := os.WriteFile(base+".js", content, 0o644); err != nil {
			return fmt.Errorf("mock compile: %w", err)
		}
		if err := os.WriteFile(base+".d.ts", nil, 0o644); err != nil {
			return fmt.Errorf("mock compile: %w", err)
		}
	}
	return nil
}

// MockProcessor records the content it is asked to process and returns the
// result of its process function, the identity by default.
type MockProcessor struct {
	processFunc func(filePath string, content []byte) ([]byte, error)
	paths       []string
	mu          sync.Mutex
}

func NewMockProcessor() *MockProcessor {
	return &MockProcessor{
		processFunc: func(_ string, content []byte) ([]byte, error) {
			return content, nil
		},
	}
}

func (mp *MockProcessor) SetProcessFunc(fn func(filePath string, content []byte) ([]byte, error)) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.processFunc = fn
}

func (mp *MockProcessor) ProcessContent(filePath string, content []byte) ([]byte, error) {
	mp.mu.Lock()
	mp.paths = append(mp.paths, filePath)
	fn := mp.processFunc
	mp.mu.Unlock()

	return fn(filePath, content)
}

// Paths returns the file paths seen so far, in call order.
func (mp *MockProcessor) Paths() []string {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return append([]string(nil), mp.paths...)
}
