package services

import (
	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/models"
)

// MergeService combines per-client canonical configs into one deduplicated
// set and computes per-client membership diffs against it.
type MergeService struct {
	log *zap.Logger
}

func NewMergeService(log *zap.Logger) *MergeService {
	return &MergeService{log: log}
}

// Merge folds the sources into a single mapping, in order. The first
// definition seen for a name wins; a later structurally different one is
// reported and ignored, so the caller's source ordering is the whole
// tie-break policy. Sources without a usable config are skipped. Entries
// are copied so the result never aliases a source.
func (s *MergeService) Merge(sources []*models.ClientState) models.ServerMap {
	merged := make(models.ServerMap)

	for _, source := range sources {
		if !source.Usable() {
			continue
		}
		for _, name := range source.Servers.SortedNames() {
			server := source.Servers[name]
			existing, ok := merged[name]
			if !ok {
				merged[name] = server.Clone()
				continue
			}
			if !existing.Equal(server) {
				s.log.Warn("conflicting definitions for server, keeping the first one",
					zap.String("server", name),
					zap.String("client", source.Name))
			}
		}
	}

	return merged
}

// Diff reports which merged servers the client is missing (added) and
// which of its servers fall outside the merged set (removed). A client
// without a usable config counts as having no servers. Only presence by
// name is compared; a same-named server whose definition differs is not
// treated as a change.
func (s *MergeService) Diff(state *models.ClientState, merged models.ServerMap) (added, removed []string) {
	for _, name := range merged.SortedNames() {
		if _, ok := state.Servers[name]; !ok {
			added = append(added, name)
		}
	}
	for _, name := range state.Servers.SortedNames() {
		if _, ok := merged[name]; !ok {
			removed = append(removed, name)
		}
	}
	return added, removed
}
