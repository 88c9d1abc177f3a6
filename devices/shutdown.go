package devices

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mobile-next/flicker/utils"
)

// ShutdownHook collects cleanup work that must run when the process is
// interrupted, such as stopping an app that was left half way into PiP.
type ShutdownHook struct {
	mu     sync.Mutex
	nextID int
	hooks  []namedHook
}

type namedHook struct {
	id   int
	name string
	fn   func() error
}

func NewShutdownHook() *ShutdownHook {
	return &ShutdownHook{}
}

// Register adds a cleanup function and returns a func that removes it again.
// Hooks run in reverse registration order, like deferred calls.
func (s *ShutdownHook) Register(name string, cleanupFn func() error) (unregister func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.hooks = append(s.hooks, namedHook{id: id, name: name, fn: cleanupFn})
	utils.Verbose("Registered shutdown hook: %s", name)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, h := range s.hooks {
			if h.id == id {
				s.hooks = append(s.hooks[:i], s.hooks[i+1:]...)
				return
			}
		}
	}
}

// Shutdown runs every registered hook, even when some fail, and clears them.
func (s *ShutdownHook) Shutdown() error {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		utils.Verbose("Running shutdown hook: %s", hook.name)
		if err := hook.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
		}
	}

	return errors.Join(errs...)
}

// Count returns the number of registered hooks.
func (s *ShutdownHook) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}
