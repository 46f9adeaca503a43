package model

// RoverMove is the last movement command recorded for a rover.
type RoverMove struct {
	RoverID string `json:"rover_id"`
	Move    string `json:"move"`
}
