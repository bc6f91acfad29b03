package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
)

type fakeYearReader struct {
	active *models.AcademicYear
	err    error
}

func (f *fakeYearReader) GetActive(ctx context.Context) (*models.AcademicYear, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.active, nil
}

func (f *fakeYearReader) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	if f.active != nil && f.active.ID == id {
		return f.active, nil
	}
	return nil, apperrors.ErrAcademicYearNotFound
}

type fakeApplicantStore struct {
	seq         int64
	registered  []*models.Applicant
	registerErr error
}

func (f *fakeApplicantStore) Register(ctx context.Context, applicant *models.Applicant) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.seq++
	applicant.ID = f.seq
	applicant.RegistrationNo = models.FormatRegistrationNumber(time.Now().Year(), f.seq)
	f.registered = append(f.registered, applicant)
	return nil
}

func (f *fakeApplicantStore) GetByID(ctx context.Context, id int64) (*models.Applicant, error) {
	for _, a := range f.registered {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrApplicantNotFound
}

func (f *fakeApplicantStore) List(ctx context.Context, filter *dto.ApplicantFilter, offset, limit int) ([]*models.Applicant, int64, error) {
	return f.registered, int64(len(f.registered)), nil
}

func (f *fakeApplicantStore) GetScoredByAcademicYear(ctx context.Context, academicYearID int64) ([]*models.Applicant, error) {
	return f.registered, nil
}

func (f *fakeApplicantStore) UpdateStatus(ctx context.Context, id int64, status models.ApplicantStatus) error {
	return nil
}

func (f *fakeApplicantStore) UpdateScore(ctx context.Context, id int64, score float64) error {
	return nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeStorage) SaveFileWithPath(fh *multipart.FileHeader, subPath string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	url := fmt.Sprintf("/uploads/%s/%s", subPath, fh.Filename)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func validRequest() *dto.SPMBRegisterRequest {
	return &dto.SPMBRegisterRequest{
		FullName:     "Siti Rahma",
		Gender:       "FEMALE",
		DateOfBirth:  "2013-04-12",
		PlaceOfBirth: "Bandung",
		Address:      "Jl. Merdeka 10",
		ParentName:   "Rahmat",
		ParentPhone:  "081234567890",
	}
}

func newTestService(years *fakeYearReader, store *fakeApplicantStore, storage *fakeStorage) *AdmissionService {
	return NewAdmissionService(years, store, storage, zerolog.Nop())
}

func TestRegisterNoActiveYear(t *testing.T) {
	store := &fakeApplicantStore{}
	storage := &fakeStorage{}
	svc := newTestService(&fakeYearReader{err: apperrors.ErrNoActiveAcademicYear}, store, storage)

	_, err := svc.Register(context.Background(), validRequest(), nil)
	if !errors.Is(err, apperrors.ErrNoActiveAcademicYear) {
		t.Fatalf("expected ErrNoActiveAcademicYear, got %v", err)
	}
	if len(store.registered) != 0 {
		t.Errorf("no applicant should be written, got %d", len(store.registered))
	}
	if len(storage.saved) != 0 {
		t.Errorf("no file should be stored, got %d", len(storage.saved))
	}
}

func TestRegisterSequentialNumbers(t *testing.T) {
	year := &models.AcademicYear{ID: 1, Name: "2026/2027", IsActive: true}
	store := &fakeApplicantStore{}
	svc := newTestService(&fakeYearReader{active: year}, store, &fakeStorage{})

	var last *dto.SPMBRegisterResult
	for i := 0; i < 3; i++ {
		result, err := svc.Register(context.Background(), validRequest(), nil)
		if err != nil {
			t.Fatalf("register %d failed: %v", i+1, err)
		}
		last = result
	}

	want := fmt.Sprintf("SPMB-%d-003", time.Now().Year())
	if last.RegistrationNo != want {
		t.Errorf("third registration number = %q, want %q", last.RegistrationNo, want)
	}
}

func TestRegisterStoresDocuments(t *testing.T) {
	year := &models.AcademicYear{ID: 1, Name: "2026/2027", IsActive: true}
	store := &fakeApplicantStore{}
	storage := &fakeStorage{}
	svc := newTestService(&fakeYearReader{active: year}, store, storage)

	files := &SPMBFiles{
		Photo:            fileHeader("photo.jpg", "image/jpeg", 1024),
		BirthCertificate: fileHeader("akta.pdf", "application/pdf", 2048),
	}

	result, err := svc.Register(context.Background(), validRequest(), files)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.FullName != "Siti Rahma" {
		t.Errorf("result name = %q", result.FullName)
	}
	if len(storage.saved) != 2 {
		t.Fatalf("expected 2 stored files, got %d", len(storage.saved))
	}

	applicant := store.registered[0]
	if applicant.PhotoURL == nil || applicant.BirthCertificateURL == nil {
		t.Error("stored document URLs should be set on the applicant")
	}
	if applicant.FamilyCardURL != nil {
		t.Error("family card URL should stay nil when no file was uploaded")
	}
	if applicant.Status != models.StatusRegistered {
		t.Errorf("status = %q, want REGISTERED", applicant.Status)
	}
}

func TestRegisterRejectsOversizedDocument(t *testing.T) {
	year := &models.AcademicYear{ID: 1, IsActive: true}
	store := &fakeApplicantStore{}
	storage := &fakeStorage{}
	svc := newTestService(&fakeYearReader{active: year}, store, storage)

	files := &SPMBFiles{Photo: fileHeader("photo.jpg", "image/jpeg", maxDocumentSize+1)}

	_, err := svc.Register(context.Background(), validRequest(), files)
	if !errors.Is(err, apperrors.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
	if len(storage.saved) != 0 || len(store.registered) != 0 {
		t.Error("oversized upload must abort before any write")
	}
}

func TestRegisterRejectsWrongContentType(t *testing.T) {
	year := &models.AcademicYear{ID: 1, IsActive: true}
	svc := newTestService(&fakeYearReader{active: year}, &fakeApplicantStore{}, &fakeStorage{})

	files := &SPMBFiles{Photo: fileHeader("photo.exe", "application/octet-stream", 100)}

	_, err := svc.Register(context.Background(), validRequest(), files)
	if !errors.Is(err, apperrors.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
}

func TestRegisterStorageFailureAborts(t *testing.T) {
	year := &models.AcademicYear{ID: 1, IsActive: true}
	store := &fakeApplicantStore{}
	storage := &fakeStorage{saveErr: errors.New("disk full")}
	svc := newTestService(&fakeYearReader{active: year}, store, storage)

	files := &SPMBFiles{Photo: fileHeader("photo.jpg", "image/jpeg", 1024)}

	_, err := svc.Register(context.Background(), validRequest(), files)
	if !errors.Is(err, apperrors.ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}
	if len(store.registered) != 0 {
		t.Error("applicant must not be written when storage fails")
	}
}

func TestRegisterInsertFailureCleansUpFiles(t *testing.T) {
	year := &models.AcademicYear{ID: 1, IsActive: true}
	store := &fakeApplicantStore{registerErr: errors.New("connection reset")}
	storage := &fakeStorage{}
	svc := newTestService(&fakeYearReader{active: year}, store, storage)

	files := &SPMBFiles{
		Photo:      fileHeader("photo.jpg", "image/jpeg", 1024),
		FamilyCard: fileHeader("kk.pdf", "application/pdf", 1024),
	}

	_, err := svc.Register(context.Background(), validRequest(), files)
	if err == nil {
		t.Fatal("expected register to fail")
	}
	if len(storage.deleted) != len(storage.saved) {
		t.Errorf("all stored files must be removed: saved %d, deleted %d",
			len(storage.saved), len(storage.deleted))
	}
}

func TestUpdateScoreBounds(t *testing.T) {
	svc := newTestService(&fakeYearReader{}, &fakeApplicantStore{}, &fakeStorage{})

	for _, score := range []float64{-0.1, 100.5} {
		if err := svc.UpdateScore(context.Background(), 1, score); err == nil {
			t.Errorf("score %v should be rejected", score)
		}
	}
	if err := svc.UpdateScore(context.Background(), 1, 100); err != nil {
		t.Errorf("score 100 should be accepted, got %v", err)
	}
}
