package models

import (
	"fmt"
	"time"
)

// Gender of an applicant or student
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// IsValid reports whether the gender value is one of the known constants
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// ApplicantStatus tracks an applicant through the admissions pipeline
type ApplicantStatus string

const (
	StatusRegistered ApplicantStatus = "REGISTERED"
	StatusVerified   ApplicantStatus = "VERIFIED"
	StatusTested     ApplicantStatus = "TESTED"
	StatusPassed     ApplicantStatus = "PASSED"
	StatusFailed     ApplicantStatus = "FAILED"
	StatusEnrolled   ApplicantStatus = "ENROLLED"
	StatusRejected   ApplicantStatus = "REJECTED"
)

// IsValid reports whether the status value is one of the known constants
func (s ApplicantStatus) IsValid() bool {
	switch s {
	case StatusRegistered, StatusVerified, StatusTested, StatusPassed,
		StatusFailed, StatusEnrolled, StatusRejected:
		return true
	}
	return false
}

// Applicant represents an admissions (SPMB) applicant record
type Applicant struct {
	ID                  int64           `json:"id"`
	RegistrationNo      string          `json:"registrationNo"`
	AcademicYearID      int64           `json:"academicYearId"`
	FullName            string          `json:"fullName"`
	Gender              Gender          `json:"gender"`
	DateOfBirth         time.Time       `json:"dateOfBirth"`
	PlaceOfBirth        string          `json:"placeOfBirth"`
	Address             string          `json:"address"`
	ParentName          string          `json:"parentName"`
	ParentPhone         string          `json:"parentPhone"`
	ParentEmail         *string         `json:"parentEmail,omitempty"`
	PreviousSchool      *string         `json:"previousSchool,omitempty"`
	PhotoURL            *string         `json:"photoUrl,omitempty"`
	BirthCertificateURL *string         `json:"birthCertificateUrl,omitempty"`
	FamilyCardURL       *string         `json:"familyCardUrl,omitempty"`
	Status              ApplicantStatus `json:"status"`
	TestScore           *float64        `json:"testScore,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`

	// Relation, populated on detail reads
	AcademicYear *AcademicYear `json:"academicYear,omitempty"`
}

// FormatRegistrationNumber builds the human-facing registration number for
// the seq-th applicant (1-based) of the given calendar year, e.g.
// SPMB-2026-003. The sequence is zero-padded to three digits; years with
// more than 999 applicants simply widen the field.
func FormatRegistrationNumber(year int, seq int64) string {
	return fmt.Sprintf("SPMB-%d-%03d", year, seq)
}
