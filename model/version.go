package model

import "time"

// DataVersion describes the directory snapshot currently being served.
type DataVersion struct {
	LoadTime      time.Time `json:"load_time"`
	Source        string    `json:"source"`
	Mode          string    `json:"mode"`
	StateCount    int       `json:"state_count"`
	DistrictCount int       `json:"district_count"`
	SectorCount   int       `json:"sector_count"`
	NGOCount      int       `json:"ngo_count"`
}
