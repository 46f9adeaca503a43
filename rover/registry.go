package rover

import (
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/uzhavar-connect/model"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Stop is the direction every rover starts in and returns to on Reset.
const Stop = "stop"

// Registry holds the last movement command sent to each rover. It lives for
// the process lifetime and is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	moves map[string]string
}

// NewRegistry seeds the registry with ids, each stopped.
func NewRegistry(ids ...string) *Registry {
	r := &Registry{moves: make(map[string]string, len(ids))}
	for _, id := range ids {
		if id = NormalizeID(id); id != "" {
			r.moves[id] = Stop
		}
	}
	return r
}

// NormalizeID lower-cases id and expands a bare number n to "rover-n".
func NormalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if _, err := strconv.Atoi(id); err == nil {
		return "rover-" + id
	}
	return id
}

// Move records direction for id. Unknown ids are registered on first move.
func (r *Registry) Move(id, direction string) (model.RoverMove, error) {
	id = NormalizeID(id)
	if id == "" {
		return model.RoverMove{}, status.Error(codes.InvalidArgument, "rover id is required")
	}
	direction = strings.TrimSpace(direction)
	if direction == "" {
		return model.RoverMove{}, status.Error(codes.InvalidArgument, "direction is required")
	}

	r.mu.Lock()
	r.moves[id] = direction
	r.mu.Unlock()

	logger.Info("Rover move recorded", zap.String("rover", id), zap.String("direction", direction))
	return model.RoverMove{RoverID: id, Move: direction}, nil
}

// Reset puts id back to Stop.
func (r *Registry) Reset(id string) (model.RoverMove, error) {
	return r.Move(id, Stop)
}

// Direction returns the last recorded direction for id.
func (r *Registry) Direction(id string) (model.RoverMove, error) {
	id = NormalizeID(id)

	r.mu.RLock()
	direction, ok := r.moves[id]
	r.mu.RUnlock()

	if !ok {
		return model.RoverMove{}, status.Errorf(codes.NotFound, "rover %q not found", id)
	}
	return model.RoverMove{RoverID: id, Move: direction}, nil
}

// Snapshot copies every rover's current direction.
func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.moves)
}
