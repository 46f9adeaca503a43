package db

import "fmt"

// Collection names used when the directory is backed by MongoDB.
const (
	StatesCollection    = "states"
	DistrictsCollection = "districts"
	SectorsCollection   = "sectors"
	NGOsCollection      = "ngos"
)

// SeqKey turns a row position into a document _id. Keys are zero padded so that
// sorting on _id returns documents in file order.
func SeqKey(seq int) string {
	return fmt.Sprintf("%08d", seq)
}

type StateModel struct {
	Key  string `bson:"_id"`
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

func (m StateModel) Id() string             { return m.Key }
func (m StateModel) CollectionName() string { return StatesCollection }

type DistrictModel struct {
	Key     string `bson:"_id"`
	ID      string `bson:"id"`
	Name    string `bson:"name"`
	StateID string `bson:"state_id"`
}

func (m DistrictModel) Id() string             { return m.Key }
func (m DistrictModel) CollectionName() string { return DistrictsCollection }

type SectorModel struct {
	Key  string `bson:"_id"`
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

func (m SectorModel) Id() string             { return m.Key }
func (m SectorModel) CollectionName() string { return SectorsCollection }

// NGOModel stores the directory entry's JSON object verbatim in Record.
type NGOModel struct {
	Key        string `bson:"_id"`
	StateID    string `bson:"state_id"`
	DistrictID string `bson:"district_id"`
	Name       string `bson:"ngo_name_title"`
	KeyIssues  string `bson:"key_issues"`
	Record     string `bson:"record"`
}

func (m NGOModel) Id() string             { return m.Key }
func (m NGOModel) CollectionName() string { return NGOsCollection }
