package v1

import "time"

// MonthEditable represents the fields of a month clients can set on
// creation.
type MonthEditable struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// MonthUpdate represents a partial update of a month. Year and month are
// updated together, updating either regenerates name and dates.
type MonthUpdate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
}

// MonthCloseResponse is returned by the close and open endpoints.
type MonthCloseResponse struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	IsClosed bool       `json:"is_closed"`
	ClosedAt *time.Time `json:"closed_at"`
	ClosedBy string     `json:"closed_by,omitempty"`
	Message  string     `json:"message"`
}

type URIYearMonth struct {
	Year  int `uri:"year" binding:"required"`
	Month int `uri:"month" binding:"required"`
}
