package model

// Camera represents a named, located video source.
type Camera struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
