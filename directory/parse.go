package directory

import (
	"encoding/json"
	"fmt"

	"github.com/SaiNageswarS/uzhavar-connect/model"
)

// NGODelimiter separates the JSON blob from the id columns in the NGO file.
const NGODelimiter = '<'

func parseState(row []string) (model.State, error) {
	if len(row) < 2 {
		return model.State{}, fmt.Errorf("state row needs 2 columns, got %d", len(row))
	}
	return model.State{ID: row[0], Name: row[1]}, nil
}

func parseDistrict(row []string) (model.District, error) {
	if len(row) < 3 {
		return model.District{}, fmt.Errorf("district row needs 3 columns, got %d", len(row))
	}
	return model.District{ID: row[0], Name: row[1], StateID: row[2]}, nil
}

func parseSector(row []string) (model.Sector, error) {
	if len(row) < 2 {
		return model.Sector{}, fmt.Errorf("sector row needs 2 columns, got %d", len(row))
	}
	return model.Sector{ID: row[0], Name: row[1]}, nil
}

// ParseNGO decodes one NGO row: blob<district_id<state_id. A row holding only
// the blob takes its ids from the blob's state_id and district_id fields.
func ParseNGO(row []string) (model.NGORecord, error) {
	if len(row) == 0 || len(row) == 2 {
		return model.NGORecord{}, fmt.Errorf("ngo row needs 1 or 3 columns, got %d", len(row))
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(row[0]), &fields); err != nil {
		return model.NGORecord{}, fmt.Errorf("ngo record is not a JSON object: %w", err)
	}
	if fields == nil {
		return model.NGORecord{}, fmt.Errorf("ngo record is null")
	}

	rec := model.NGORecord{
		Name:      stringField(fields, "ngo_name_title"),
		KeyIssues: stringField(fields, "key_issues"),
		Raw:       json.RawMessage(row[0]),
	}
	if len(row) >= 3 {
		rec.DistrictID = row[1]
		rec.StateID = row[2]
	} else {
		rec.DistrictID = stringField(fields, "district_id")
		rec.StateID = stringField(fields, "state_id")
	}
	return rec, nil
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
