package models

import "time"

// Student represents an enrolled student in the dashboard.
// NIS is the school-issued student number and must be unique.
type Student struct {
	ID           int64     `json:"id"`
	NIS          string    `json:"nis"`
	FullName     string    `json:"fullName"`
	Gender       Gender    `json:"gender"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	PlaceOfBirth string    `json:"placeOfBirth"`
	Address      string    `json:"address"`
	ParentName   string    `json:"parentName"`
	ParentPhone  string    `json:"parentPhone"`
	ClassName    *string   `json:"className,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
