package controller

import (
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/SaiNageswarS/uzhavar-connect/middleware"
)

// MetadataController reports on and refreshes the loaded directory data.
type MetadataController struct {
	dir *directory.Directory
}

func ProvideMetadataController(dir *directory.Directory) *MetadataController {
	return &MetadataController{dir: dir}
}

// Version returns counts and load time of the last successful load.
func (mc *MetadataController) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mc.dir.Version())
}

// Reload re-reads the source. A failed reload leaves the served data unchanged.
func (mc *MetadataController) Reload(w http.ResponseWriter, r *http.Request) {
	version, err := mc.dir.Reload(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, version)
}

func (mc *MetadataController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/ngos/version",
			Method:  http.MethodGet,
			Handler: middleware.Standard(mc.Version),
		},
		{
			Pattern: "/ngos/reload",
			Method:  http.MethodPost,
			Handler: middleware.Protected(mc.Reload),
		},
	}
}
