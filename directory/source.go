package directory

import (
	"context"
	"path/filepath"

	"github.com/SaiNageswarS/uzhavar-connect/flatfile"
	"github.com/SaiNageswarS/uzhavar-connect/model"
)

// Source supplies the four directory data sets, each in source order.
type Source interface {
	States(ctx context.Context) ([]model.State, error)
	Districts(ctx context.Context) ([]model.District, error)
	Sectors(ctx context.Context) ([]model.Sector, error)
	NGOs(ctx context.Context) ([]model.NGORecord, error)
	String() string
}

// districtFilterer is implemented by sources that can drop districts of other
// states while reading.
type districtFilterer interface {
	DistrictsOf(ctx context.Context, stateID string) ([]model.District, error)
}

// Paths locates the flat files.
type Paths struct {
	States    string
	Districts string
	Sectors   string
	NGOs      string
}

// DefaultPaths returns the conventional file names under dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		States:    filepath.Join(dir, "states.csv"),
		Districts: filepath.Join(dir, "districts.csv"),
		Sectors:   filepath.Join(dir, "sectors.csv"),
		NGOs:      filepath.Join(dir, "ngos.csv"),
	}
}

// Files lists every path in p.
func (p Paths) Files() []string {
	return []string{p.States, p.Districts, p.Sectors, p.NGOs}
}

// FileSource reads the directory from flat files. Every call re-reads the file.
type FileSource struct {
	paths Paths
}

func NewFileSource(paths Paths) *FileSource {
	return &FileSource{paths: paths}
}

func (s *FileSource) Paths() Paths { return s.paths }

func (s *FileSource) String() string {
	return "file:" + filepath.Dir(s.paths.States)
}

func (s *FileSource) States(ctx context.Context) ([]model.State, error) {
	return readFile(ctx, s.paths.States, flatfile.Options{}, parseState)
}

func (s *FileSource) Districts(ctx context.Context) ([]model.District, error) {
	return readFile(ctx, s.paths.Districts, flatfile.Options{}, parseDistrict)
}

// DistrictsOf keeps only rows whose state_id column equals stateID. Short rows
// are still handed to the parser so that they fail the read.
func (s *FileSource) DistrictsOf(ctx context.Context, stateID string) ([]model.District, error) {
	opts := flatfile.Options{Keep: func(r []string) bool {
		return len(r) < 3 || r[2] == stateID
	}}
	return readFile(ctx, s.paths.Districts, opts, parseDistrict)
}

func (s *FileSource) Sectors(ctx context.Context) ([]model.Sector, error) {
	return readFile(ctx, s.paths.Sectors, flatfile.Options{}, parseSector)
}

// NGOs decodes every row of the NGO file. One malformed row fails the read.
func (s *FileSource) NGOs(ctx context.Context) ([]model.NGORecord, error) {
	return readFile(ctx, s.paths.NGOs, flatfile.Options{Comma: NGODelimiter, LazyQuotes: true}, ParseNGO)
}

// readFile decodes every kept row of path with parse. A row that parse rejects
// fails the whole read with a *flatfile.ParseError naming its line in the file.
func readFile[T any](ctx context.Context, path string, opts flatfile.Options, parse func([]string) (T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []T{}
	err := flatfile.StreamRows(path, opts, func(line int, row []string) error {
		v, err := parse(row)
		if err != nil {
			return &flatfile.ParseError{Path: path, Line: line, Err: err}
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
