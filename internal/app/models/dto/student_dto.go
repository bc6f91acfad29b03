package dto

// StudentRequest creates or updates a student record
type StudentRequest struct {
	NIS          string `json:"nis" binding:"required,min=4,max=20"`
	FullName     string `json:"fullName" binding:"required,min=2,max=100"`
	Gender       string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	DateOfBirth  string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	PlaceOfBirth string `json:"placeOfBirth" binding:"required"`
	Address      string `json:"address" binding:"required"`
	ParentName   string `json:"parentName" binding:"required"`
	ParentPhone  string `json:"parentPhone" binding:"required"`
	ClassName    string `json:"className"`
}

// StudentFilter narrows the student listing
type StudentFilter struct {
	Search    *string
	ClassName *string
	Page      int
	PageSize  int
}

// ImportRowError describes why a single spreadsheet row was rejected
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport summarizes a bulk student import
type ImportReport struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
