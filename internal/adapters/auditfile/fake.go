package auditfile

import (
	"context"
	"sync"

	perr "todoapi/internal/platform/errors"
)

// Fake keeps the audit log in memory. Reading before the first append fails
// the same way a missing file does
type Fake struct {
	mu       sync.Mutex
	contents *string
}

// Append adds text to the in-memory file
func (f *Fake) Append(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contents == nil {
		f.contents = new(string)
	}
	*f.contents += text
	return nil
}

// Read returns everything appended so far
func (f *Fake) Read(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contents == nil {
		return "", perr.NotFoundf("The audit log file does not exist.")
	}
	return *f.contents, nil
}
