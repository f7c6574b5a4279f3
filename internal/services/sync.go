package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vlazic/mcp-sync/internal/clients"
	"github.com/vlazic/mcp-sync/internal/models"
)

// SyncService drives one synchronization pass: load every client, merge
// their server sets (or take one client as the source of truth), and
// rewrite the clients whose server set would change.
type SyncService struct {
	adapters []clients.Adapter
	merge    *MergeService
	log      *zap.Logger
}

// Options controls a single run.
type Options struct {
	// Source, when set, names the client whose config is treated as
	// authoritative; merging is skipped.
	Source string
	// DryRun reports the changes without writing any file.
	DryRun bool
}

func NewSyncService(adapters []clients.Adapter, log *zap.Logger) *SyncService {
	return &SyncService{
		adapters: adapters,
		merge:    NewMergeService(log),
		log:      log,
	}
}

// LoadAll reads every client in roster order.
func (s *SyncService) LoadAll() []*models.ClientState {
	states := make([]*models.ClientState, 0, len(s.adapters))
	for _, adapter := range s.adapters {
		states = append(states, adapter.Load())
	}
	return states
}

// Run performs one pass. An unknown source client fails before any file is
// touched; zero usable configs is the one fatal condition of the core
// itself. Per-client read and write failures degrade to warnings so one
// broken client never blocks the rest.
func (s *SyncService) Run(opts Options) error {
	if opts.Source != "" && s.findAdapter(opts.Source) == nil {
		return fmt.Errorf("unknown source client '%s'", opts.Source)
	}

	states := s.LoadAll()

	merged, err := s.mergedSet(states, opts.Source)
	if err != nil {
		return err
	}
	s.log.Info("merged server set",
		zap.Int("servers", len(merged)))
	s.log.Debug("merged server names",
		zap.Strings("names", merged.SortedNames()))

	for i, adapter := range s.adapters {
		state := states[i]

		if !adapter.Writable() {
			continue
		}
		if state.Exists && !state.Usable() {
			// Found but unreadable: writing without understanding the
			// file's structure would corrupt it.
			continue
		}

		added, removed := s.merge.Diff(state, merged)
		if len(added) == 0 && len(removed) == 0 {
			s.log.Debug("client already in sync", zap.String("client", adapter.Name()))
			continue
		}

		if opts.DryRun {
			s.log.Info("would update client",
				zap.String("client", adapter.Name()),
				zap.Strings("add", added),
				zap.Strings("remove", removed))
			continue
		}

		if err := adapter.Write(merged); err != nil {
			s.log.Warn("failed to update client",
				zap.String("client", adapter.Name()),
				zap.String("path", adapter.Path()),
				zap.Error(err))
			continue
		}
		s.log.Info("updated client",
			zap.String("client", adapter.Name()),
			zap.Strings("add", added),
			zap.Strings("remove", removed))
	}

	return nil
}

// mergedSet computes the canonical set for this run: the ordered merge of
// every usable client, or a copy of the source client's config.
func (s *SyncService) mergedSet(states []*models.ClientState, source string) (models.ServerMap, error) {
	if source != "" {
		for _, state := range states {
			if state.Name != source {
				continue
			}
			if !state.Usable() {
				return nil, fmt.Errorf("source client '%s' has no readable MCP configuration", source)
			}
			return state.Servers.Clone(), nil
		}
		return nil, fmt.Errorf("unknown source client '%s'", source)
	}

	usable := 0
	for _, state := range states {
		if state.Usable() {
			usable++
		}
	}
	if usable == 0 {
		return nil, fmt.Errorf("no readable MCP configurations found in any client")
	}

	return s.merge.Merge(states), nil
}

func (s *SyncService) findAdapter(name string) clients.Adapter {
	for _, adapter := range s.adapters {
		if adapter.Name() == name {
			return adapter
		}
	}
	return nil
}
