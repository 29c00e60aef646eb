package models

// Program represents a degree program students belong to
type Program struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	DurationYears int    `json:"durationYears"`
}
