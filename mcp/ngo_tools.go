package mcp

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/SaiNageswarS/uzhavar-connect/model"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	serverName    = "ngo-directory"
	serverVersion = "1.0.0"
)

type StateEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DistrictEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StateID string `json:"state_id"`
}

type SectorEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NGOSummary is the part of an NGO record an assistant needs to answer with.
// Record holds the full entry.
type NGOSummary struct {
	Name       string         `json:"name"`
	KeyIssues  string         `json:"key_issues"`
	StateID    string         `json:"state_id"`
	DistrictID string         `json:"district_id"`
	Record     map[string]any `json:"record,omitempty"`
}

type ListStatesInput struct{}

type ListStatesOutput struct {
	States []StateEntry `json:"states"`
}

type ListDistrictsInput struct {
	State string `json:"state" jsonschema:"state id as returned by list_states"`
}

type ListDistrictsOutput struct {
	Districts []DistrictEntry `json:"districts"`
}

type ListSectorsInput struct{}

type ListSectorsOutput struct {
	Sectors []SectorEntry `json:"sectors"`
}

type SearchInput struct {
	State    string   `json:"state" jsonschema:"state id"`
	District string   `json:"district" jsonschema:"district id as stored on the NGO rows"`
	Sectors  []string `json:"sectors,omitempty" jsonschema:"sector names every result must mention"`
	Match    string   `json:"match,omitempty" jsonschema:"substring (default) or tag"`
}

type SearchOutput struct {
	Count int          `json:"count"`
	NGOs  []NGOSummary `json:"ngos"`
}

// NGOTools exposes the directory as MCP tools.
type NGOTools struct {
	dir *directory.Directory
}

func NewNGOTools(dir *directory.Directory) *NGOTools {
	return &NGOTools{dir: dir}
}

// Implementation identifies the directory's MCP server to clients.
func Implementation() *mcpsdk.Implementation {
	return &mcpsdk.Implementation{Name: serverName, Version: serverVersion}
}

// ConfigureMCP registers every directory tool on server.
func (t *NGOTools) ConfigureMCP(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_states",
		Description: "List every state in the NGO directory.",
	}, t.ListStates)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_districts",
		Description: "List the districts of one state.",
	}, t.ListDistricts)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_sectors",
		Description: "List the sectors NGOs can be searched by.",
	}, t.ListSectors)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "search_ngos",
		Description: "Find NGOs in a district working on all of the given sectors.",
	}, t.Search)
}

func (t *NGOTools) ListStates(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListStatesInput) (*mcpsdk.CallToolResult, ListStatesOutput, error) {
	states, err := t.dir.States(ctx)
	if err != nil {
		return nil, ListStatesOutput{}, err
	}
	out := ListStatesOutput{States: make([]StateEntry, 0, len(states))}
	for _, s := range states {
		out.States = append(out.States, StateEntry{ID: s.ID, Name: s.Name})
	}
	return nil, out, nil
}

func (t *NGOTools) ListDistricts(ctx context.Context, _ *mcpsdk.CallToolRequest, in ListDistrictsInput) (*mcpsdk.CallToolResult, ListDistrictsOutput, error) {
	if in.State == "" {
		return nil, ListDistrictsOutput{}, fmt.Errorf("state is required")
	}
	districts, err := t.dir.Districts(ctx, in.State)
	if err != nil {
		return nil, ListDistrictsOutput{}, err
	}
	out := ListDistrictsOutput{Districts: make([]DistrictEntry, 0, len(districts))}
	for _, d := range districts {
		out.Districts = append(out.Districts, DistrictEntry{ID: d.ID, Name: d.Name, StateID: d.StateID})
	}
	return nil, out, nil
}

func (t *NGOTools) ListSectors(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListSectorsInput) (*mcpsdk.CallToolResult, ListSectorsOutput, error) {
	sectors, err := t.dir.Sectors(ctx)
	if err != nil {
		return nil, ListSectorsOutput{}, err
	}
	out := ListSectorsOutput{Sectors: make([]SectorEntry, 0, len(sectors))}
	for _, s := range sectors {
		out.Sectors = append(out.Sectors, SectorEntry{ID: s.ID, Name: s.Name})
	}
	return nil, out, nil
}

func (t *NGOTools) Search(ctx context.Context, _ *mcpsdk.CallToolRequest, in SearchInput) (*mcpsdk.CallToolResult, SearchOutput, error) {
	match, err := directory.ParseSectorMatch(in.Match)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	records, err := t.dir.Search(ctx, directory.SearchQuery{
		StateID:    in.State,
		DistrictID: in.District,
		Sectors:    directory.SplitSectors(in.Sectors...),
		Match:      match,
	})
	if err != nil {
		logger.Error("MCP search failed", zap.String("state", in.State), zap.String("district", in.District), zap.Error(err))
		return nil, SearchOutput{}, err
	}

	out := SearchOutput{NGOs: make([]NGOSummary, 0, len(records))}
	_, err = linq.Pipe2(
		linq.FromSlice(ctx, records),
		linq.Select(summarize),
		linq.ForEach(func(s NGOSummary) {
			out.NGOs = append(out.NGOs, s)
		}),
	)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	out.Count = len(out.NGOs)
	return nil, out, nil
}

func summarize(r model.NGORecord) NGOSummary {
	s := NGOSummary{
		Name:       r.Name,
		KeyIssues:  r.KeyIssues,
		StateID:    r.StateID,
		DistrictID: r.DistrictID,
	}
	if fields, err := r.Fields(); err == nil {
		s.Record = fields
	}
	return s
}
