package dto

import "github.com/pratama/sekolahku/internal/app/models"

// SPMBRegisterRequest carries the form fields of an admissions submission.
// Files (photo, birth certificate, family card) travel separately in the
// multipart body.
type SPMBRegisterRequest struct {
	FullName       string `form:"name" binding:"required,min=2,max=100"`
	Gender         string `form:"gender" binding:"required,oneof=MALE FEMALE"`
	DateOfBirth    string `form:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	PlaceOfBirth   string `form:"placeOfBirth" binding:"required"`
	Address        string `form:"address" binding:"required"`
	ParentName     string `form:"parentName" binding:"required"`
	ParentPhone    string `form:"parentPhone" binding:"required"`
	ParentEmail    string `form:"parentEmail" binding:"omitempty,email"`
	PreviousSchool string `form:"previousSchool"`
}

// SPMBRegisterResult is returned to the applicant on success
type SPMBRegisterResult struct {
	RegistrationNo string `json:"registrationNo"`
	FullName       string `json:"name"`
}

// ApplicantFilter narrows the staff applicant listing
type ApplicantFilter struct {
	Status         *string
	AcademicYearID *int64
	Search         *string
	Page           int
	PageSize       int
}

// UpdateStatusRequest transitions an applicant between pipeline states
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=REGISTERED VERIFIED TESTED PASSED FAILED ENROLLED REJECTED"`
}

// UpdateScoreRequest records an applicant's entrance test score
type UpdateScoreRequest struct {
	TestScore float64 `json:"testScore" binding:"required,gte=0,lte=100"`
}

// RankedApplicant is one row of the admissions ranking view
type RankedApplicant struct {
	Rank           int     `json:"rank"`
	ApplicantID    int64   `json:"applicantId"`
	RegistrationNo string  `json:"registrationNo"`
	FullName       string  `json:"fullName"`
	TestScore      float64 `json:"testScore"`
	Passed         bool    `json:"passed"`
}

// FromApplicant converts an applicant model into a ranking row without a rank
func FromApplicant(a *models.Applicant) RankedApplicant {
	row := RankedApplicant{
		ApplicantID:    a.ID,
		RegistrationNo: a.RegistrationNo,
		FullName:       a.FullName,
	}
	if a.TestScore != nil {
		row.TestScore = *a.TestScore
	}
	return row
}
