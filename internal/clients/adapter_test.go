package clients

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
)

func TestRegistry(t *testing.T) {
	t.Run("Default roster covers every known client", func(t *testing.T) {
		roster := Registry(zap.NewNop(), Options{})
		if len(roster) != len(KnownNames()) {
			t.Fatalf("Expected %d adapters, got %d", len(KnownNames()), len(roster))
		}
		for i, name := range KnownNames() {
			if roster[i].Name() != name {
				t.Errorf("Expected '%s' at position %d, got '%s'", name, i, roster[i].Name())
			}
		}
	})

	t.Run("Path overrides are applied", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "mcp.json")
		roster := Registry(zap.NewNop(), Options{Paths: map[string]string{"cursor": custom}})
		for _, adapter := range roster {
			if adapter.Name() == "cursor" && adapter.Path() != custom {
				t.Errorf("Override not applied, got '%s'", adapter.Path())
			}
		}
	})

	t.Run("Disabled clients leave the roster", func(t *testing.T) {
		roster := Registry(zap.NewNop(), Options{Disabled: map[string]bool{"cursor": true}})
		for _, adapter := range roster {
			if adapter.Name() == "cursor" {
				t.Error("Disabled client still present")
			}
		}
		if len(roster) != len(KnownNames())-1 {
			t.Errorf("Expected %d adapters, got %d", len(KnownNames())-1, len(roster))
		}
	})
}

func TestKnown(t *testing.T) {
	if !Known("codex") {
		t.Error("Expected 'codex' to be known")
	}
	if Known("notepad") {
		t.Error("Expected 'notepad' to be unknown")
	}
}

func TestDefaultPathsCoverRoster(t *testing.T) {
	paths := DefaultPaths()
	for _, name := range KnownNames() {
		if paths[name] == "" {
			t.Errorf("No default path for '%s'", name)
		}
	}
}

func TestStubAdapters(t *testing.T) {
	roster := Registry(zap.NewNop(), Options{})

	for _, name := range []string{"goose", "claude-code"} {
		var stub Adapter
		for _, adapter := range roster {
			if adapter.Name() == name {
				stub = adapter
			}
		}
		if stub == nil {
			t.Fatalf("Stub '%s' missing from roster", name)
		}

		state := stub.Load()
		if state.Exists || state.Usable() {
			t.Errorf("Stub '%s' should always report an absent config", name)
		}
		if stub.Writable() {
			t.Errorf("Stub '%s' should not be writable", name)
		}
		if err := stub.Write(models.ServerMap{}); err == nil {
			t.Errorf("Stub '%s' write should refuse", name)
		}
	}
}
