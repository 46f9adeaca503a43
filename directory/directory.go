package directory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/uzhavar-connect/model"
	"go.uber.org/zap"
)

// LoadMode decides when the directory goes back to its source.
type LoadMode string

const (
	// ModeCached serves one indexed snapshot until Reload is called.
	ModeCached LoadMode = "cached"
	// ModePerRequest re-reads the source on every call.
	ModePerRequest LoadMode = "per_request"
)

// ParseLoadMode accepts "cached" (also the empty string) or "per_request".
func ParseLoadMode(s string) (LoadMode, error) {
	switch m := LoadMode(s); m {
	case "":
		return ModeCached, nil
	case ModeCached, ModePerRequest:
		return m, nil
	default:
		return "", invalidArgument("unknown load mode %q", s)
	}
}

// Options configures a Directory.
type Options struct {
	Mode LoadMode
	// Match is used for searches that do not ask for a specific mode.
	Match SectorMatch
}

// SearchQuery selects NGOs in one district.
type SearchQuery struct {
	StateID    string
	DistrictID string
	Sectors    []string
	Match      SectorMatch
}

// Directory answers state, district, sector and NGO lookups. In cached mode
// the current snapshot is swapped atomically by Reload; readers never see a
// partially built snapshot.
type Directory struct {
	source Source
	opts   Options

	mu      sync.RWMutex
	current *Snapshot
	version model.DataVersion
}

func New(source Source, opts Options) *Directory {
	if opts.Mode == "" {
		opts.Mode = ModeCached
	}
	if opts.Match == MatchDefault {
		opts.Match = MatchSubstring
	}
	return &Directory{source: source, opts: opts}
}

func (d *Directory) Mode() LoadMode { return d.opts.Mode }

func (d *Directory) Source() Source { return d.source }

// Reload reads the source into a new snapshot and swaps it in. On failure the
// previous snapshot stays in service.
func (d *Directory) Reload(ctx context.Context) (model.DataVersion, error) {
	start := time.Now()
	snap, err := LoadSnapshot(ctx, d.source)
	if err != nil {
		logger.Error("Directory reload failed",
			zap.String("source", d.source.String()), zap.Error(err))
		return model.DataVersion{}, err
	}
	version := snap.version(d.source.String(), d.opts.Mode)

	d.mu.Lock()
	if d.opts.Mode == ModeCached {
		d.current = snap
	}
	d.version = version
	d.mu.Unlock()

	logger.Info("Loaded NGO directory",
		zap.String("source", version.Source),
		zap.String("mode", version.Mode),
		zap.Int("states", version.StateCount),
		zap.Int("districts", version.DistrictCount),
		zap.Int("sectors", version.SectorCount),
		zap.Int("ngos", version.NGOCount),
		zap.Duration("took", time.Since(start)))
	return version, nil
}

// Version describes the last successful load.
func (d *Directory) Version() model.DataVersion {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// snapshot returns the cached snapshot, loading it on first use. It returns
// nil in per-request mode.
func (d *Directory) snapshot(ctx context.Context) (*Snapshot, error) {
	if d.opts.Mode != ModeCached {
		return nil, nil
	}
	d.mu.RLock()
	snap := d.current
	d.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	if _, err := d.Reload(ctx); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current, nil
}

func (d *Directory) States(ctx context.Context) ([]model.State, error) {
	snap, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return nonNil(slices.Clone(snap.states)), nil
	}
	states, err := d.source.States(ctx)
	if err != nil {
		return nil, internal("read states", err)
	}
	return nonNil(states), nil
}

// State returns the first state whose id equals id.
func (d *Directory) State(ctx context.Context, id string) (model.State, error) {
	states, err := d.States(ctx)
	if err != nil {
		return model.State{}, err
	}
	for _, s := range states {
		if s.ID == id {
			return s, nil
		}
	}
	return model.State{}, notFound("state %q not found", id)
}

// Districts returns the districts whose state_id equals stateID exactly. An
// unknown state yields an empty list.
func (d *Directory) Districts(ctx context.Context, stateID string) ([]model.District, error) {
	snap, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return nonNil(slices.Clone(snap.districtsByState[stateID])), nil
	}

	if f, ok := d.source.(districtFilterer); ok {
		districts, err := f.DistrictsOf(ctx, stateID)
		if err != nil {
			return nil, internal("read districts", err)
		}
		return nonNil(districts), nil
	}
	all, err := d.source.Districts(ctx)
	if err != nil {
		return nil, internal("read districts", err)
	}
	out := []model.District{}
	for _, dist := range all {
		if dist.StateID == stateID {
			out = append(out, dist)
		}
	}
	return out, nil
}

func (d *Directory) Sectors(ctx context.Context) ([]model.Sector, error) {
	snap, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return nonNil(slices.Clone(snap.sectors)), nil
	}
	sectors, err := d.source.Sectors(ctx)
	if err != nil {
		return nil, internal("read sectors", err)
	}
	return nonNil(sectors), nil
}

// Search returns, in source order, the NGOs of the query's state and district
// whose key_issues satisfy every requested sector.
func (d *Directory) Search(ctx context.Context, q SearchQuery) ([]model.NGORecord, error) {
	if q.StateID == "" {
		return nil, invalidArgument("state is required")
	}
	if q.DistrictID == "" {
		return nil, invalidArgument("district is required")
	}
	match := q.Match
	if match == MatchDefault {
		match = d.opts.Match
	}

	snap, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []model.NGORecord
	if snap != nil {
		candidates = snap.ngosByLocation[location{stateID: q.StateID, districtID: q.DistrictID}]
	} else {
		all, err := d.source.NGOs(ctx)
		if err != nil {
			return nil, internal("read ngos", err)
		}
		candidates = all
	}

	out := []model.NGORecord{}
	for _, n := range candidates {
		if n.StateID != q.StateID || n.DistrictID != q.DistrictID {
			continue
		}
		if match.Matches(n.KeyIssues, q.Sectors) {
			out = append(out, n)
		}
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
