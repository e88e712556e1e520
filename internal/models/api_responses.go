package models

import "github.com/google/uuid"

// SnapshotResponse is the API view of the current dashboard state.
type SnapshotResponse struct {
	Key       uuid.UUID     `json:"key"`
	Selection Selection     `json:"selection"`
	Window    PayloadRange  `json:"filter_range"`
	Pie       PieSeries     `json:"pie"`
	Scatter   ScatterSeries `json:"scatter"`
}

// DatasetResponse describes the loaded launch table.
type DatasetResponse struct {
	Records      int            `json:"records"`
	Sites        []string       `json:"sites"`
	PayloadRange PayloadRange   `json:"payload_range"`
	Successes    map[string]int `json:"successes"`
}
