package api

import "github.com/google/uuid"

// MapResponse is the JSON body of a generated map.
type MapResponse struct {
	ID               uuid.UUID `json:"id"`
	Seed             int64     `json:"seed"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	Seekers          int       `json:"seekers"`
	SeekersRequested int       `json:"seekers_requested"`
	Collectibles     int       `json:"collectibles"`
	Attempts         int       `json:"attempts"`
	Rows             []string  `json:"rows"`
}

// PresetResponse describes one level preset.
type PresetResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Seekers      int    `json:"seekers"`
	Collectibles int    `json:"collectibles"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
