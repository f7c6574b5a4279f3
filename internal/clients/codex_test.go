package clients

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
)

const codexFixture = `# user config
[general]
model = "gpt-4"
approval = untrusted

[mcp_servers.github]
command = "npx"
args = ["-y", "@modelcontextprotocol/server-github"]
env = { GITHUB_TOKEN = "abc" }

[mcp_servers.halfbaked]
args = ["has", "no", "command"]
`

func TestCodexAdapterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeTestFile(t, path, codexFixture)

	adapter := newCodexAdapter("codex", "Codex CLI", path, zap.NewNop())
	state := adapter.Load()
	if !state.Usable() {
		t.Fatal("Expected a usable state")
	}

	t.Run("Prefixed sections become servers", func(t *testing.T) {
		server, ok := state.Servers["github"]
		if !ok {
			t.Fatal("Server 'github' not found")
		}
		if server.Command != "npx" || len(server.Args) != 2 || server.Env["GITHUB_TOKEN"] != "abc" {
			t.Errorf("Unexpected server: %+v", server)
		}
	})

	t.Run("Sections without a command are skipped", func(t *testing.T) {
		if _, ok := state.Servers["halfbaked"]; ok {
			t.Error("Commandless section should be dropped")
		}
	})

	t.Run("Non-prefixed sections are not servers", func(t *testing.T) {
		if len(state.Servers) != 1 {
			t.Errorf("Expected 1 server, got %d", len(state.Servers))
		}
	})
}

func TestCodexAdapterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeTestFile(t, path, codexFixture)

	adapter := newCodexAdapter("codex", "Codex CLI", path, zap.NewNop())
	merged := models.ServerMap{
		"fs": {Command: "npx", Args: []string{"-y", "server-fs"}, Env: map[string]string{"ROOT": "/tmp"}},
	}
	if err := adapter.Write(merged); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	text := string(data)

	t.Run("Old server sections are gone", func(t *testing.T) {
		if strings.Contains(text, "mcp_servers.github") || strings.Contains(text, "halfbaked") {
			t.Errorf("Stale server sections left behind:\n%s", text)
		}
	})

	t.Run("Non-prefixed sections come first, untouched", func(t *testing.T) {
		generalIdx := strings.Index(text, "[general]")
		serverIdx := strings.Index(text, "[mcp_servers.fs]")
		if generalIdx < 0 || serverIdx < 0 || generalIdx > serverIdx {
			t.Errorf("Unexpected section order:\n%s", text)
		}
		if !strings.Contains(text, "approval = untrusted") {
			t.Errorf("Raw scalar in preserved section was altered:\n%s", text)
		}
	})

	t.Run("Round trip restores the canonical shape", func(t *testing.T) {
		state := adapter.Load()
		if !state.Servers["fs"].Equal(merged["fs"]) {
			t.Errorf("Round trip changed the definition: %+v", state.Servers["fs"])
		}
	})
}

func TestCodexAdapterWriteKeepsTopLevelContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeTestFile(t, path, `# managed by hand
model = "o3"
approval_policy = "never"

[mcp_servers.github]
command = "npx"
`)

	adapter := newCodexAdapter("codex", "Codex CLI", path, zap.NewNop())
	if err := adapter.Write(models.ServerMap{"fs": {Command: "npx"}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	text := string(data)

	for _, line := range []string{"# managed by hand", `model = "o3"`, `approval_policy = "never"`} {
		if !strings.Contains(text, line) {
			t.Errorf("Top-level line %q lost on rewrite:\n%s", line, text)
		}
	}
	if strings.Contains(text, "mcp_servers.github") {
		t.Errorf("Stale server section left behind:\n%s", text)
	}
	if !strings.Contains(text, "[mcp_servers.fs]") {
		t.Errorf("Merged server section missing:\n%s", text)
	}
}

func TestCodexAdapterWriteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "config.toml")
	adapter := newCodexAdapter("codex", "Codex CLI", path, zap.NewNop())

	merged := models.ServerMap{"fs": {Command: "npx"}}
	if err := adapter.Write(merged); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	state := adapter.Load()
	if !state.Servers["fs"].Equal(merged["fs"]) {
		t.Errorf("Unexpected state after write: %+v", state.Servers)
	}
}
