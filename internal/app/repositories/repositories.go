package repositories

import "github.com/pratama/sekolahku/internal/db"

// Repositories is a container for all application repositories
type Repositories struct {
	UserRepository         *UserRepository
	AcademicYearRepository *AcademicYearRepository
	ApplicantRepository    *ApplicantRepository
	StudentRepository      *StudentRepository
}

// NewRepositories creates all repositories sharing one connection pool.
// Repositories that run multi-statement writes get the wrapper for its
// transaction helper; the rest query the pool directly.
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database.Pool),
		AcademicYearRepository: NewAcademicYearRepository(database),
		ApplicantRepository:    NewApplicantRepository(database),
		StudentRepository:      NewStudentRepository(database.Pool),
	}
}
