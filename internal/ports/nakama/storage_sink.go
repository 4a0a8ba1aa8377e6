package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

const snapshotCollection = "match_snapshots"

// StorageSink mirrors match snapshots into Nakama storage objects. It is a
// best-effort eventually-consistent mirror; the in-memory store stays
// authoritative.
type StorageSink struct {
	nk runtime.NakamaModule
}

// NewStorageSink creates the storage mirror.
func NewStorageSink(nk runtime.NakamaModule) *StorageSink {
	return &StorageSink{nk: nk}
}

// Name identifies the sink in logs.
func (s *StorageSink) Name() string { return "nakama-storage" }

// Write upserts the snapshot as a system-owned storage object keyed by match
// id. Version is left unmanaged: last write wins, which is acceptable for a
// mirror fed by serialized per-match writes.
func (s *StorageSink) Write(ctx context.Context, m *domain.Match) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", m.ID, err)
	}
	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      snapshotCollection,
		Key:             m.ID,
		Value:           string(body),
		PermissionRead:  1,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("storage write %s: %w", m.ID, err)
	}
	return nil
}
