package clients

import (
	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
)

// Adapter translates one client's on-disk config dialect to and from the
// canonical server mapping.
type Adapter interface {
	// Name is the client identifier used in flags, config and output.
	Name() string
	// DisplayName is the human-readable client name.
	DisplayName() string
	// Path is the resolved config file location.
	Path() string
	// Load reads the config file. It never fails: a missing file yields a
	// not-exists state, an unparseable one yields exists with nil servers
	// plus a logged warning.
	Load() *models.ClientState
	// Write rewrites the config file so it contains exactly the servers in
	// merged, preserving whatever non-MCP content the dialect carries.
	Write(merged models.ServerMap) error
	// Writable reports whether Write is implemented for this dialect.
	Writable() bool
}

// Options tunes how the roster is built.
type Options struct {
	// Paths maps client names to config path overrides.
	Paths map[string]string
	// Disabled names clients to leave out of the roster.
	Disabled map[string]bool
}

// Registry builds the client roster in merge-precedence order: when two
// clients define the same server differently, the one listed first wins.
func Registry(log *zap.Logger, opts Options) []Adapter {
	paths := DefaultPaths()
	for name, path := range opts.Paths {
		if path != "" {
			paths[name] = path
		}
	}

	roster := []Adapter{
		newJSONAdapter("claude-desktop", "Claude Desktop", paths["claude-desktop"], log),
		newJSONAdapter("cursor", "Cursor", paths["cursor"], log),
		newJSONAdapter("windsurf", "Windsurf", paths["windsurf"], log),
		newJSONAdapter("cline", "Cline", paths["cline"], log),
		newSettingsAdapter("gemini", "Gemini CLI", paths["gemini"], log),
		newCodexAdapter("codex", "Codex CLI", paths["codex"], log),
		newOpenCodeAdapter("opencode", "OpenCode", paths["opencode"], log),
		newStubAdapter("goose", "Goose", paths["goose"],
			"YAML configs cannot be parsed yet"),
		newStubAdapter("claude-code", "Claude Code", paths["claude-code"],
			"merging into ~/.claude.json needs a full-fidelity editor"),
	}

	if len(opts.Disabled) == 0 {
		return roster
	}

	active := make([]Adapter, 0, len(roster))
	for _, adapter := range roster {
		if !opts.Disabled[adapter.Name()] {
			active = append(active, adapter)
		}
	}
	return active
}

// KnownNames lists every client name the tool recognizes, in roster order.
func KnownNames() []string {
	return []string{
		"claude-desktop", "cursor", "windsurf", "cline",
		"gemini", "codex", "opencode", "goose", "claude-code",
	}
}

// Known reports whether name is a recognized client.
func Known(name string) bool {
	for _, known := range KnownNames() {
		if known == name {
			return true
		}
	}
	return false
}

// serverFromMap lifts a decoded JSON object into the canonical shape.
// Entries without a usable command are rejected.
func serverFromMap(entry map[string]interface{}) (models.ServerConfig, bool) {
	command, _ := entry["command"].(string)
	if command == "" {
		return models.ServerConfig{}, false
	}

	server := models.ServerConfig{Command: command}
	if args, ok := entry["args"].([]interface{}); ok {
		for _, arg := range args {
			if s, ok := arg.(string); ok {
				server.Args = append(server.Args, s)
			}
		}
	}
	if env, ok := entry["env"].(map[string]interface{}); ok {
		server.Env = stringMap(env)
	}
	return server, true
}

func stringMap(raw map[string]interface{}) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	result := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			result[key] = s
		}
	}
	return result
}

// mcpServersValue renders the canonical mapping as a generic JSON object,
// omitting empty args/env the way clients themselves write them.
func mcpServersValue(merged models.ServerMap) map[string]interface{} {
	servers := make(map[string]interface{}, len(merged))
	for name, server := range merged {
		entry := map[string]interface{}{
			"command": server.Command,
		}
		if len(server.Args) > 0 {
			entry["args"] = server.Args
		}
		if len(server.Env) > 0 {
			entry["env"] = server.Env
		}
		servers[name] = entry
	}
	return servers
}
