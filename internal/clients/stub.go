package clients

import (
	"fmt"

	"github.com/vlazic/mcp-sync/internal/models"
)

// stubAdapter holds a roster slot for a client whose dialect cannot be
// safely round-tripped yet. It always reports an absent config, so the
// client never feeds the merge and never gets written to.
type stubAdapter struct {
	name    string
	display string
	path    string
	reason  string
}

func newStubAdapter(name, display, path, reason string) Adapter {
	return &stubAdapter{name: name, display: display, path: path, reason: reason}
}

func (a *stubAdapter) Name() string        { return a.name }
func (a *stubAdapter) DisplayName() string { return a.display }
func (a *stubAdapter) Path() string        { return a.path }
func (a *stubAdapter) Writable() bool      { return false }

func (a *stubAdapter) Load() *models.ClientState {
	return &models.ClientState{Name: a.name, Path: a.path}
}

func (a *stubAdapter) Write(models.ServerMap) error {
	return fmt.Errorf("client '%s' is read-only: %s", a.name, a.reason)
}
