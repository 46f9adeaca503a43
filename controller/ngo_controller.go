package controller

import (
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/SaiNageswarS/uzhavar-connect/middleware"
)

// NGOController serves read-only directory lookups.
type NGOController struct {
	dir *directory.Directory
}

func ProvideNGOController(dir *directory.Directory) *NGOController {
	return &NGOController{dir: dir}
}

func (c *NGOController) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := c.dir.States(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (c *NGOController) GetState(w http.ResponseWriter, r *http.Request) {
	st, err := c.dir.State(r.Context(), r.PathValue("state_value"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (c *NGOController) ListDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := c.dir.Districts(r.Context(), r.PathValue("state_value"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, districts)
}

func (c *NGOController) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := c.dir.Sectors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sectors)
}

// Search handles GET /ngos/search?state=&district=&sectors=a,b[&match=tag].
// sectors may also be repeated.
func (c *NGOController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	match, err := directory.ParseSectorMatch(q.Get("match"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	records, err := c.dir.Search(r.Context(), directory.SearchQuery{
		StateID:    q.Get("state"),
		DistrictID: q.Get("district"),
		Sectors:    directory.SplitSectors(q["sectors"]...),
		Match:      match,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (c *NGOController) Routes() []server.Route {
	return []server.Route{
		{Pattern: "/ngos/states", Method: http.MethodGet, Handler: middleware.Standard(c.ListStates)},
		{Pattern: "/ngos/states/{state_value}", Method: http.MethodGet, Handler: middleware.Standard(c.GetState)},
		{Pattern: "/ngos/states/{state_value}/districts", Method: http.MethodGet, Handler: middleware.Standard(c.ListDistricts)},
		{Pattern: "/ngos/sectors", Method: http.MethodGet, Handler: middleware.Standard(c.ListSectors)},
		{Pattern: "/ngos/search", Method: http.MethodGet, Handler: middleware.Standard(c.Search)},
	}
}
