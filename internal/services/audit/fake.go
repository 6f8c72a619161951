package audit

import (
	"context"
	"strings"
	"sync"
)

// Fake collects messages in memory
type Fake struct {
	mu       sync.Mutex
	messages []string
}

// Log records message
func (f *Fake) Log(_ context.Context, message string) error {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
	return nil
}

// Reset forgets every recorded message
func (f *Fake) Reset() {
	f.mu.Lock()
	f.messages = nil
	f.mu.Unlock()
}

// Contents joins the recorded messages with newlines
func (f *Fake) Contents() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.messages, "\n")
}
