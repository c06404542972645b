package models

import "time"

// Event types
const (
	EventTypeQueryAnswered      = "QUERY_ANSWERED"
	EventTypeDashboardRefreshed = "DASHBOARD_REFRESHED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// QueryAnsweredEvent published after a query has been interpreted and run
type QueryAnsweredEvent struct {
	BaseEvent
	Query             string       `json:"query"`
	AnalysisType      AnalysisType `json:"analysis_type"`
	Scopes            []Scope      `json:"data_scope"`
	VisualizationType string       `json:"visualization_type"`
	CacheHit          bool         `json:"cache_hit"`
	DurationMs        int64        `json:"duration_ms"`
}

// DashboardRefreshedEvent published when the background refresher
// recomputes the canned dashboard panels
type DashboardRefreshedEvent struct {
	BaseEvent
	Panels     []string `json:"panels"`
	DurationMs int64    `json:"duration_ms"`
}
