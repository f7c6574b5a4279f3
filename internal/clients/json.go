package clients

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
)

// jsonAdapter handles the clients whose whole config file is the standard
// { "mcpServers": { name: {command, args, env} } } document: Claude
// Desktop, Cursor, Windsurf and Cline all share it.
type jsonAdapter struct {
	name    string
	display string
	path    string
	log     *zap.Logger
}

type mcpServersFile struct {
	MCPServers map[string]rawServer `json:"mcpServers"`
}

type rawServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

func newJSONAdapter(name, display, path string, log *zap.Logger) Adapter {
	return &jsonAdapter{name: name, display: display, path: path, log: log}
}

func (a *jsonAdapter) Name() string        { return a.name }
func (a *jsonAdapter) DisplayName() string { return a.display }
func (a *jsonAdapter) Path() string        { return a.path }
func (a *jsonAdapter) Writable() bool      { return true }

func (a *jsonAdapter) Load() *models.ClientState {
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

	var file mcpServersFile
	if err := json.Unmarshal(data, &file); err != nil {
		a.log.Warn("skipping client with malformed config",
			zap.String("client", a.name), zap.String("path", a.path), zap.Error(err))
		return state
	}

	state.Servers = make(models.ServerMap, len(file.MCPServers))
	for name, entry := range file.MCPServers {
		if entry.Command == "" {
			continue
		}
		state.Servers[name] = models.ServerConfig{
			Command: entry.Command,
			Args:    entry.Args,
			Env:     entry.Env,
		}
	}
	return state
}

// Write overwrites the whole file: these clients keep nothing but the
// server mapping in it.
func (a *jsonAdapter) Write(merged models.ServerMap) error {
	file := mcpServersFile{MCPServers: make(map[string]rawServer, len(merged))}
	for name, server := range merged {
		file.MCPServers[name] = rawServer{
			Command: server.Command,
			Args:    server.Args,
			Env:     server.Env,
		}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config for '%s': %w", a.name, err)
	}

	return writeFile(a.path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
