package services

import "smartbot/career-matcher/internal/models"

// Qualitative bands for display emphasis. They never feed back into
// matching or transition logic.
const (
	BandStrong   = "strong"
	BandModerate = "moderate"
	BandWeak     = "weak"
)

// Band maps a 0-100 score into its display band: above 80 strong,
// above 60 moderate, weak otherwise.
func Band(score int) string {
	switch {
	case score > 80:
		return BandStrong
	case score > 60:
		return BandModerate
	default:
		return BandWeak
	}
}

// RenderResult projects an AnalysisResult into the view model handed to
// clients. Pure; the stored result is never mutated.
func RenderResult(role models.Role, result *models.AnalysisResult) *models.ResultView {
	matchesTitle := "Подходящие вакансии"
	if role == models.RoleRecruiter {
		matchesTitle = "Подходящие кандидаты"
	}

	cards := make([]models.MatchCard, 0, len(result.Matches))
	for _, item := range result.Matches {
		cards = append(cards, models.MatchCard{
			Title:       item.Title,
			Secondary:   item.Secondary,
			Location:    item.Location,
			Salary:      item.Salary,
			Match:       item.Match,
			Band:        Band(item.Match),
			Description: item.Description,
		})
	}

	recommendations := result.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}

	return &models.ResultView{
		MatchPercentage: result.MatchPercentage,
		MatchBand:       Band(result.MatchPercentage),
		MatchText:       result.MatchText,
		MatchesTitle:    matchesTitle,
		Matches:         cards,
		Recommendations: recommendations,
	}
}
