package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks so tests can run them by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append remembers the hook without scheduling it.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown performs a non-blocking send so slow readers never hang the caller.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
