// Package view renders the resume form and the analysis result.
package view

import (
	"strconv"

	"github.com/spigell/resume-parser/internal/backend"
)

const (
	Title    = "Resume Parser"
	Subtitle = "Check if your resume matches the job requirements"

	ResultsHeading  = "Analysis Results"
	KeywordsHeading = "Keywords Analysis"

	SuitableText    = "✅ Your profile is suitable for this position"
	NotSuitableText = "❌ Your profile may not be suitable for this position"

	RequirementsPlaceholder = "Enter keywords or requirements separated by commas (e.g., React, JavaScript, CSS, API integration)"

	SubmitLabel  = "Analyze Resume"
	LoadingLabel = "Analyzing..."
	ResetLabel   = "Analyze Another Resume"
)

// MatchLabel formats the match percentage the way the backend sent it, e.g. "82% Match".
func MatchLabel(r *backend.AnalysisResult) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(r.MatchPercentage, 'f', -1, 64) + "% Match"
}

// Suitability is derived from the suitable flag only.
func Suitability(r *backend.AnalysisResult) string {
	if r != nil && r.Suitable {
		return SuitableText
	}
	return NotSuitableText
}

// SuitabilityClass is the CSS class of the match badge.
func SuitabilityClass(r *backend.AnalysisResult) string {
	if r != nil && r.Suitable {
		return "suitable"
	}
	return "not-suitable"
}
