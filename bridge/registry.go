package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMalformedArgs  = errors.New("malformed command arguments")
)

// Handler is one named endpoint on the UI↔backend boundary. Arguments
// arrive as raw JSON from the transport; the result is serialized back
// by the transport.
type Handler func(ctx context.Context, args []byte) (any, error)

// Registry is the dispatch table mapping command names to handlers. It
// replaces framework-level command registration so the boundary can be
// exercised without any UI runtime attached.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return errors.New("command name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}
	r.handlers[name] = h
	return nil
}

func (r *Registry) Dispatch(ctx context.Context, name string, args []byte) (any, error) {
	r.mu.RLock()
	h, exists := r.handlers[name]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return h(ctx, args)
}

func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Typed adapts a strongly typed handler onto the raw dispatch table.
// Binary request fields ride as base64 per the JSON convention.
func Typed[Req, Resp any](fn func(ctx context.Context, req Req) (Resp, error)) Handler {
	return func(ctx context.Context, args []byte) (any, error) {
		var req Req
		if len(args) > 0 {
			if err := sonic.Unmarshal(args, &req); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedArgs, err)
			}
		}
		return fn(ctx, req)
	}
}
