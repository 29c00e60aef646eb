package helpers

import (
	"database/sql"
	"time"
)

// GetNullString converts a string pointer to sql.NullString.
// A nil pointer becomes an empty NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetContentNullString converts a string value to sql.NullString.
// An empty string becomes an empty NullString.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// GetNullInt64 converts an int64 to sql.NullInt64.
// Zero becomes an empty NullInt64, which suits optional foreign keys.
func GetNullInt64(i int64) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}

// GetNullTime converts a time pointer to sql.NullTime.
// A nil pointer becomes an empty NullTime.
func GetNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
