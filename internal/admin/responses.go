package admin

import "time"

// StatsResponse is the HTTP response DTO for GET /admin/stats.
type StatsResponse struct {
	Countries   int       `json:"countries"`
	Persons     int       `json:"persons"`
	GeneratedAt time.Time `json:"generated_at"`
}
