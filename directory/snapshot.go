package directory

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/uzhavar-connect/model"
)

type location struct {
	stateID    string
	districtID string
}

// Snapshot is one fully loaded, indexed copy of the directory. It is never
// mutated after construction, so it can be shared between goroutines.
type Snapshot struct {
	states    []model.State
	districts []model.District
	sectors   []model.Sector
	ngos      []model.NGORecord

	districtsByState map[string][]model.District
	ngosByLocation   map[location][]model.NGORecord
	loadedAt         time.Time
}

// NewSnapshot indexes the given data sets. Index buckets keep source order.
func NewSnapshot(states []model.State, districts []model.District, sectors []model.Sector, ngos []model.NGORecord) *Snapshot {
	s := &Snapshot{
		states:           states,
		districts:        districts,
		sectors:          sectors,
		ngos:             ngos,
		districtsByState: make(map[string][]model.District),
		ngosByLocation:   make(map[location][]model.NGORecord),
		loadedAt:         time.Now(),
	}
	for _, d := range districts {
		s.districtsByState[d.StateID] = append(s.districtsByState[d.StateID], d)
	}
	for _, n := range ngos {
		loc := location{stateID: n.StateID, districtID: n.DistrictID}
		s.ngosByLocation[loc] = append(s.ngosByLocation[loc], n)
	}
	return s
}

// LoadSnapshot reads the four data sets from src in parallel.
func LoadSnapshot(ctx context.Context, src Source) (*Snapshot, error) {
	statesTask := async.Go(func() ([]model.State, error) { return src.States(ctx) })
	districtsTask := async.Go(func() ([]model.District, error) { return src.Districts(ctx) })
	sectorsTask := async.Go(func() ([]model.Sector, error) { return src.Sectors(ctx) })
	ngosTask := async.Go(func() ([]model.NGORecord, error) { return src.NGOs(ctx) })

	states, err := async.Await(statesTask)
	if err != nil {
		return nil, internal("load states", err)
	}
	districts, err := async.Await(districtsTask)
	if err != nil {
		return nil, internal("load districts", err)
	}
	sectors, err := async.Await(sectorsTask)
	if err != nil {
		return nil, internal("load sectors", err)
	}
	ngos, err := async.Await(ngosTask)
	if err != nil {
		return nil, internal("load ngos", err)
	}

	return NewSnapshot(states, districts, sectors, ngos), nil
}

func (s *Snapshot) version(source string, mode LoadMode) model.DataVersion {
	return model.DataVersion{
		LoadTime:      s.loadedAt,
		Source:        source,
		Mode:          string(mode),
		StateCount:    len(s.states),
		DistrictCount: len(s.districts),
		SectorCount:   len(s.sectors),
		NGOCount:      len(s.ngos),
	}
}
