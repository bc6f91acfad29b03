package dto

// CreateAcademicYearRequest creates a new enrollment period
type CreateAcademicYearRequest struct {
	Name      string `json:"name" binding:"required,min=4,max=20"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// UpdateAcademicYearRequest edits the name or dates of a period
type UpdateAcademicYearRequest struct {
	Name      string `json:"name" binding:"required,min=4,max=20"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}
