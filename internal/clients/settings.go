package clients

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
)

// settingsAdapter handles Gemini CLI's settings.json, where mcpServers
// lives next to unrelated user settings (theme, auth, editor preferences).
// Every sibling key must survive a rewrite untouched.
type settingsAdapter struct {
	name    string
	display string
	path    string
	log     *zap.Logger
}

func newSettingsAdapter(name, display, path string, log *zap.Logger) Adapter {
	return &settingsAdapter{name: name, display: display, path: path, log: log}
}

func (a *settingsAdapter) Name() string        { return a.name }
func (a *settingsAdapter) DisplayName() string { return a.display }
func (a *settingsAdapter) Path() string        { return a.path }
func (a *settingsAdapter) Writable() bool      { return true }

func (a *settingsAdapter) Load() *models.ClientState {
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

	var settings map[string]interface{}
	if err := json.Unmarshal(data, &settings); err != nil {
		a.log.Warn("skipping client with malformed config",
			zap.String("client", a.name), zap.String("path", a.path), zap.Error(err))
		return state
	}

	state.Servers = make(models.ServerMap)
	if raw, ok := settings["mcpServers"].(map[string]interface{}); ok {
		for name, value := range raw {
			entry, ok := value.(map[string]interface{})
			if !ok {
				continue
			}
			if server, ok := serverFromMap(entry); ok {
				state.Servers[name] = server
			}
		}
	}
	return state
}

func (a *settingsAdapter) Write(merged models.ServerMap) error {
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

// serialize replaces the mcpServers key of the existing document and keeps
// everything else as it was.
func (a *settingsAdapter) serialize(merged models.ServerMap, existing []byte) ([]byte, error) {
	settings := make(map[string]interface{})
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &settings); err != nil {
			return nil, fmt.Errorf("cannot rewrite '%s' without understanding it: %w", a.path, err)
		}
	}

	settings["mcpServers"] = mcpServersValue(merged)

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config for '%s': %w", a.name, err)
	}
	return data, nil
}
