package services

import (
	"testing"

	"github.com/pratama/sekolahku/internal/app/models"
)

func scorePtr(v float64) *float64 { return &v }

func TestRankApplicants(t *testing.T) {
	applicants := []*models.Applicant{
		{ID: 1, RegistrationNo: "SPMB-2026-001", FullName: "Andi", TestScore: scorePtr(50)},
		{ID: 2, RegistrationNo: "SPMB-2026-002", FullName: "Budi", TestScore: scorePtr(90)},
		{ID: 3, RegistrationNo: "SPMB-2026-003", FullName: "Citra", TestScore: scorePtr(90)},
		{ID: 4, RegistrationNo: "SPMB-2026-004", FullName: "Dewi", TestScore: nil},
		{ID: 5, RegistrationNo: "SPMB-2026-005", FullName: "Eka", TestScore: scorePtr(70)},
	}

	ranked := RankApplicants(applicants, 70)

	if len(ranked) != 4 {
		t.Fatalf("expected 4 ranked applicants, got %d", len(ranked))
	}

	wantIDs := []int64{2, 3, 5, 1}
	wantScores := []float64{90, 90, 70, 50}
	wantPassed := []bool{true, true, true, false}

	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Errorf("entry %d: rank = %d, want %d", i, r.Rank, i+1)
		}
		if r.ApplicantID != wantIDs[i] {
			t.Errorf("entry %d: applicant id = %d, want %d", i, r.ApplicantID, wantIDs[i])
		}
		if r.TestScore != wantScores[i] {
			t.Errorf("entry %d: score = %v, want %v", i, r.TestScore, wantScores[i])
		}
		if r.Passed != wantPassed[i] {
			t.Errorf("entry %d: passed = %v, want %v", i, r.Passed, wantPassed[i])
		}
	}
}

func TestRankApplicantsTiesKeepArrivalOrder(t *testing.T) {
	applicants := []*models.Applicant{
		{ID: 10, RegistrationNo: "SPMB-2026-001", TestScore: scorePtr(80)},
		{ID: 11, RegistrationNo: "SPMB-2026-002", TestScore: scorePtr(80)},
		{ID: 12, RegistrationNo: "SPMB-2026-003", TestScore: scorePtr(80)},
	}

	ranked := RankApplicants(applicants, 75)
	for i, wantID := range []int64{10, 11, 12} {
		if ranked[i].ApplicantID != wantID {
			t.Errorf("entry %d: applicant id = %d, want %d", i, ranked[i].ApplicantID, wantID)
		}
	}
}

func TestRankApplicantsEmpty(t *testing.T) {
	if got := RankApplicants(nil, 70); len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}

	unscored := []*models.Applicant{{ID: 1}, {ID: 2}}
	if got := RankApplicants(unscored, 70); len(got) != 0 {
		t.Errorf("expected unscored applicants to be excluded, got %d entries", len(got))
	}
}
