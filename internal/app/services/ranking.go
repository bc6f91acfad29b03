package services

import (
	"sort"

	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
)

// DefaultPassThreshold is the minimum test score treated as passing when no
// explicit threshold is supplied.
const DefaultPassThreshold = 70.0

// RankApplicants orders applicants by test score, highest first, and assigns
// 1-based ranks. Applicants without a score are left out. Ties keep the
// order the applicants arrived in, so equal scores rank by registration
// order when the input is sorted that way.
func RankApplicants(applicants []*models.Applicant, threshold float64) []dto.RankedApplicant {
	scored := make([]*models.Applicant, 0, len(applicants))
	for _, a := range applicants {
		if a.TestScore != nil {
			scored = append(scored, a)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].TestScore > *scored[j].TestScore
	})

	ranked := make([]dto.RankedApplicant, 0, len(scored))
	for i, a := range scored {
		row := dto.FromApplicant(a)
		row.Rank = i + 1
		row.Passed = row.TestScore >= threshold
		ranked = append(ranked, row)
	}

	return ranked
}
