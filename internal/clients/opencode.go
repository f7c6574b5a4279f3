package clients

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
	"github.com/vlazic/mcp-sync/internal/parse"
)

// openCodeAdapter handles OpenCode's opencode.json, a commented-JSON
// document whose "mcp" object tags entries as "local" (array-form command
// plus an environment map) or "remote" (URL plus headers). Only enabled
// local entries map onto the canonical shape; remote entries are carried
// through writes verbatim.
type openCodeAdapter struct {
	name    string
	display string
	path    string
	log     *zap.Logger
}

func newOpenCodeAdapter(name, display, path string, log *zap.Logger) Adapter {
	return &openCodeAdapter{name: name, display: display, path: path, log: log}
}

func (a *openCodeAdapter) Name() string        { return a.name }
func (a *openCodeAdapter) DisplayName() string { return a.display }
func (a *openCodeAdapter) Path() string        { return a.path }
func (a *openCodeAdapter) Writable() bool      { return true }

func (a *openCodeAdapter) Load() *models.ClientState {
	state := &models.ClientState{Name: a.name, Path: a.path}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if !os.IsNotExist(err) {
			state.Exists = true
			a.log.Warn("cannot read client config",
				zap.String("client", a.name), zap.String("path", a.path), zap.Error(err))
		}
		return state
	}
	state.Exists = true

	var doc map[string]interface{}
	if err := parse.DecodeJSONC(data, &doc); err != nil {
		a.log.Warn("skipping client with malformed config",
			zap.String("client", a.name), zap.String("path", a.path), zap.Error(err))
		return state
	}

	state.Servers = make(models.ServerMap)
	mcp, _ := doc["mcp"].(map[string]interface{})
	for name, value := range mcp {
		entry, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		if kind, _ := entry["type"].(string); kind != "local" {
			continue
		}
		if enabled, ok := entry["enabled"].(bool); ok && !enabled {
			continue
		}

		parts, _ := entry["command"].([]interface{})
		var command []string
		for _, part := range parts {
			if s, ok := part.(string); ok {
				command = append(command, s)
			}
		}
		if len(command) == 0 {
			continue
		}

		server := models.ServerConfig{Command: command[0]}
		if len(command) > 1 {
			server.Args = command[1:]
		}
		if env, ok := entry["environment"].(map[string]interface{}); ok {
			server.Env = stringMap(env)
		}
		state.Servers[name] = server
	}
	return state
}

func (a *openCodeAdapter) Write(merged models.ServerMap) error {
	existing, err := os.ReadFile(a.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}

	data, err := a.serialize(merged, existing)
	if err != nil {
		return err
	}
	return writeFile(a.path, data)
}

// serialize rebuilds the "mcp" object: remote entries keep their original
// form by name, and every merged server becomes a local entry with the
// command array reconstructed as [command, args...]. Other top-level keys
// of the document are untouched. Comments do not survive the rewrite, the
// document structure does.
func (a *openCodeAdapter) serialize(merged models.ServerMap, existing []byte) ([]byte, error) {
	doc := make(map[string]interface{})
	if len(existing) > 0 {
		if err := parse.DecodeJSONC(existing, &doc); err != nil {
			return nil, fmt.Errorf("cannot rewrite '%s' without understanding it: %w", a.path, err)
		}
	}

	mcp := make(map[string]interface{})
	if current, ok := doc["mcp"].(map[string]interface{}); ok {
		for name, value := range current {
			entry, ok := value.(map[string]interface{})
			if !ok {
				continue
			}
			if kind, _ := entry["type"].(string); kind == "remote" {
				mcp[name] = value
			}
		}
	}

	for name, server := range merged {
		entry := map[string]interface{}{
			"type":    "local",
			"command": append([]string{server.Command}, server.Args...),
			"enabled": true,
		}
		if len(server.Env) > 0 {
			entry["environment"] = server.Env
		}
		mcp[name] = entry
	}
	doc["mcp"] = mcp

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config for '%s': %w", a.name, err)
	}
	return data, nil
}
