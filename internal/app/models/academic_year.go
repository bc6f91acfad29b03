package models

import "time"

// AcademicYear represents an enrollment period such as "2026/2027".
// At most one academic year is active at a time; the database enforces
// this with a partial unique index and the activation path swaps the
// flag transactionally.
type AcademicYear struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}
