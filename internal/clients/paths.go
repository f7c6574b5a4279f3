package clients

import (
	"runtime"

	"github.com/vlazic/mcp-sync/internal/config"
)

// DefaultPaths returns each client's config file location for the current
// platform. Only Claude Desktop branches on OS; everything else keeps the
// same home-relative path everywhere.
func DefaultPaths() map[string]string {
	paths := map[string]string{
		"cursor":      "~/.cursor/mcp.json",
		"windsurf":    "~/.codeium/windsurf/mcp_config.json",
		"cline":       "~/.config/Code/User/globalStorage/saoudrizwan.claude-dev/settings/cline_mcp_settings.json",
		"gemini":      "~/.gemini/settings.json",
		"codex":       "~/.codex/config.toml",
		"opencode":    "~/.config/opencode/opencode.json",
		"goose":       "~/.config/goose/config.yaml",
		"claude-code": "~/.claude.json",
	}

	switch runtime.GOOS {
	case "darwin":
		paths["claude-desktop"] = "~/Library/Application Support/Claude/claude_desktop_config.json"
	default:
		paths["claude-desktop"] = "~/.config/Claude/claude_desktop_config.json"
	}

	for name, path := range paths {
		paths[name] = config.ExpandPath(path)
	}
	return paths
}
