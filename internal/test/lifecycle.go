package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks that modules register during tests, so
// start/stop behavior can be driven by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub records graceful-termination requests.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown signals the test that the app asked to terminate.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
