package controller

import (
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/uzhavar-connect/middleware"
	"github.com/SaiNageswarS/uzhavar-connect/rover"
)

type RoverController struct {
	registry *rover.Registry

	move      http.HandlerFunc
	direction http.HandlerFunc
}

func ProvideRoverController(registry *rover.Registry) *RoverController {
	c := &RoverController{registry: registry}
	c.move = middleware.Protected(c.Move)
	c.direction = middleware.Standard(c.Direction)
	return c
}

// MoveRoute serves both verbs of /rover/{rover_id}/move. Routes are keyed on
// the path alone, so reads and writes share one entry and split here.
func (c *RoverController) MoveRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.direction(w, r)
	case http.MethodPost:
		c.move(w, r)
	default:
		middleware.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (c *RoverController) Move(w http.ResponseWriter, r *http.Request) {
	mv, err := c.registry.Move(r.PathValue("rover_id"), r.URL.Query().Get("direction"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mv)
}

func (c *RoverController) Reset(w http.ResponseWriter, r *http.Request) {
	mv, err := c.registry.Reset(r.PathValue("rover_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mv)
}

func (c *RoverController) Direction(w http.ResponseWriter, r *http.Request) {
	mv, err := c.registry.Direction(r.PathValue("rover_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mv)
}

func (c *RoverController) ListMoves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.registry.Snapshot())
}

func (c *RoverController) Routes() []server.Route {
	return []server.Route{
		{Pattern: "/rover/{rover_id}/move", Method: "", Handler: c.MoveRoute},
		{Pattern: "/rover/{rover_id}/reset", Method: http.MethodPost, Handler: middleware.Protected(c.Reset)},
		{Pattern: "/rover/moves", Method: http.MethodGet, Handler: middleware.Standard(c.ListMoves)},
	}
}
