// internal/scoring/scoring.go

// Package scoring holds the pure score functions for repositories and
// developers. No I/O, fully deterministic.
package scoring

import "math"

// RepoMetrics are the inputs to the repository hotness score.
type RepoMetrics struct {
	StarsGrowth24h int
	ForksGrowth24h int
	HasReadme      bool
	HasLicense     bool
	LastCommitDays int
	OpenIssueRatio float64 // open / (open + stars)
}

// HotnessScore computes the repository score. The base is a weighted sum of
// 24h growth; each quality signal adds independently to a single multiplier.
func HotnessScore(m RepoMetrics) float64 {
	base := float64(m.StarsGrowth24h)*0.7 + float64(m.ForksGrowth24h)*0.3

	multiplier := 1.0
	if m.HasReadme {
		multiplier += 0.10
	}
	if m.HasLicense {
		multiplier += 0.05
	}
	if m.LastCommitDays < 30 {
		multiplier += 0.15
	}
	if m.OpenIssueRatio < 0.3 {
		multiplier += 0.10
	}

	return round2(base * multiplier)
}

// DeveloperMetrics are the inputs to the developer impact score.
type DeveloperMetrics struct {
	Followers     int
	ActiveRepos   int // repos currently tracked for the developer
	TotalStars    int64
	Contributions int // last year contributions
}

// ImpactScore computes the developer score.
func ImpactScore(m DeveloperMetrics) float64 {
	followerScore := math.Log10(float64(m.Followers) + 1)
	repoScore := float64(m.ActiveRepos) * 0.5
	starBonus := math.Log10(float64(m.TotalStars)+1) * 0.3
	activityBonus := math.Min(float64(m.Contributions)/1000, 1) * 0.2

	return round2(followerScore + repoScore + starBonus + activityBonus)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
