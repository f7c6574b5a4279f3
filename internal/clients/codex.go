package clients

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
	"github.com/vlazic/mcp-sync/internal/parse"
)

// codexSectionPrefix marks the server sections in Codex's config.toml:
// one [mcp_servers.<name>] block per server.
const codexSectionPrefix = "mcp_servers."

// codexAdapter handles Codex CLI's sectioned config. Server sections are
// rewritten wholesale; everything else in the file survives untouched.
type codexAdapter struct {
	name    string
	display string
	path    string
	log     *zap.Logger
}

func newCodexAdapter(name, display, path string, log *zap.Logger) Adapter {
	return &codexAdapter{name: name, display: display, path: path, log: log}
}

func (a *codexAdapter) Name() string        { return a.name }
func (a *codexAdapter) DisplayName() string { return a.display }
func (a *codexAdapter) Path() string        { return a.path }
func (a *codexAdapter) Writable() bool      { return true }

func (a *codexAdapter) Load() *models.ClientState {
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

	doc := parse.ParseSections(string(data))
	state.Servers = make(models.ServerMap)
	for _, section := range doc.Sections {
		if !strings.HasPrefix(section.Name, codexSectionPrefix) {
			continue
		}
		command := section.GetString("command")
		if command == "" {
			continue
		}
		state.Servers[strings.TrimPrefix(section.Name, codexSectionPrefix)] = models.ServerConfig{
			Command: command,
			Args:    section.GetStringSlice("args"),
			Env:     section.GetStringMap("env"),
		}
	}
	return state
}

func (a *codexAdapter) Write(merged models.ServerMap) error {
	existing, err := os.ReadFile(a.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}
	return writeFile(a.path, a.serialize(merged, existing))
}

// serialize drops every existing mcp_servers.* section and appends one
// fresh section per merged server. Everything else, including top-level
// keys, comments and sections outside the subset, passes through verbatim
// in its original order.
func (a *codexAdapter) serialize(merged models.ServerMap, existing []byte) []byte {
	doc := parse.ParseSections(string(existing))

	kept := make([]*parse.Section, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		if !strings.HasPrefix(section.Name, codexSectionPrefix) {
			kept = append(kept, section)
		}
	}
	doc.Sections = kept

	for _, name := range merged.SortedNames() {
		server := merged[name]
		section := parse.NewSection(codexSectionPrefix + name)
		section.Set("command", server.Command)
		if len(server.Args) > 0 {
			section.Set("args", server.Args)
		}
		if len(server.Env) > 0 {
			section.Set("env", server.Env)
		}
		doc.Sections = append(doc.Sections, section)
	}

	return []byte(doc.Encode())
}
