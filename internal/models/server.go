package models

import "sort"

// ServerConfig is the canonical, client-independent definition of one MCP
// server: the executable to launch plus its arguments and environment.
type ServerConfig struct {
	Command  string            `json:"command"`
	Args     []string          `json:"args,omitempty"`
	Env      map[string]string `json:"env,omitempty"`
	Disabled bool              `json:"disabled,omitempty"`
}

// Equal reports whether two definitions are structurally identical: same
// command, same args in the same order, same env contents. Absent args/env
// and empty args/env compare equal. The disabled flag is client-local
// bookkeeping and takes no part in equality.
func (s ServerConfig) Equal(other ServerConfig) bool {
	if s.Command != other.Command {
		return false
	}
	if len(s.Args) != len(other.Args) {
		return false
	}
	for i, arg := range s.Args {
		if other.Args[i] != arg {
			return false
		}
	}
	if len(s.Env) != len(other.Env) {
		return false
	}
	for key, value := range s.Env {
		if other.Env[key] != value {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so merged results never alias their source.
func (s ServerConfig) Clone() ServerConfig {
	clone := s
	if s.Args != nil {
		clone.Args = append([]string(nil), s.Args...)
	}
	if s.Env != nil {
		clone.Env = make(map[string]string, len(s.Env))
		for key, value := range s.Env {
			clone.Env[key] = value
		}
	}
	return clone
}

// ServerMap is a canonical config: server name -> definition.
type ServerMap map[string]ServerConfig

// SortedNames returns the server names in lexical order for stable
// iteration and output.
func (m ServerMap) SortedNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the mapping.
func (m ServerMap) Clone() ServerMap {
	clone := make(ServerMap, len(m))
	for name, server := range m {
		clone[name] = server.Clone()
	}
	return clone
}
