package model

import (
	"bytes"
	"encoding/json"
)

// State is a row of the states file.
type State struct {
	ID   string
	Name string
}

// MarshalJSON keeps the flat-file row shape: [id, name].
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{s.ID, s.Name})
}

// District is a row of the districts file. StateID is a raw reference to
// State.ID; it is never checked against the states file.
type District struct {
	ID      string
	Name    string
	StateID string
}

// MarshalJSON keeps the flat-file row shape: [id, name, state_id].
func (d District) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{d.ID, d.Name, d.StateID})
}

// Sector is a row of the sectors file.
type Sector struct {
	ID   string
	Name string
}

// MarshalJSON keeps the flat-file row shape: [id, name].
func (s Sector) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{s.ID, s.Name})
}

// NGORecord is one NGO directory entry. The JSON object it was read from is
// kept verbatim in Raw and is what gets served back to clients.
type NGORecord struct {
	StateID    string
	DistrictID string
	Name       string // ngo_name_title
	KeyIssues  string // key_issues, free text searched by sector
	Raw        json.RawMessage
}

func (r NGORecord) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// Fields decodes the raw record into a generic map.
func (r NGORecord) Fields() (map[string]any, error) {
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(r.Raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
