package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spigell/resume-parser/internal/backend"
	"github.com/spigell/resume-parser/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLabel(t *testing.T) {
	tests := []struct {
		result *backend.AnalysisResult
		expect string
	}{
		{result: &backend.AnalysisResult{MatchPercentage: 82}, expect: "82% Match"},
		{result: &backend.AnalysisResult{MatchPercentage: 0}, expect: "0% Match"},
		{result: &backend.AnalysisResult{MatchPercentage: 66.5}, expect: "66.5% Match"},
		{result: nil, expect: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, MatchLabel(tt.result))
	}
}

func TestSuitability(t *testing.T) {
	assert.Equal(t, SuitableText, Suitability(&backend.AnalysisResult{Suitable: true}))
	assert.Equal(t, NotSuitableText, Suitability(&backend.AnalysisResult{Suitable: false, MatchPercentage: 99}))
	assert.Equal(t, "suitable", SuitabilityClass(&backend.AnalysisResult{Suitable: true}))
	assert.Equal(t, "not-suitable", SuitabilityClass(nil))
}

func TestTextResult(t *testing.T) {
	snap := form.Snapshot{Status: form.Succeeded{Result: &backend.AnalysisResult{
		Suitable:             true,
		MatchPercentage:      82,
		MatchingNounKeywords: []string{"go"},
		RankedPhrases:        []string{"cloud infrastructure"},
	}}}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, snap))

	out := buf.String()
	assert.Contains(t, out, "82% Match")
	assert.Contains(t, out, "✅")
	assert.Contains(t, out, "matched: go")
	assert.Contains(t, out, "top phrases: cloud infrastructure")
}

func TestTextForm(t *testing.T) {
	snap := form.Snapshot{
		File:   &form.File{Name: "cv.pdf"},
		Status: form.Failed{Message: "Error: no features found"},
	}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, snap))

	assert.Equal(t, "Resume: cv.pdf\nError: no features found\n", buf.String())
}

func TestHTMLResultView(t *testing.T) {
	snap := form.Snapshot{Status: form.Succeeded{Result: &backend.AnalysisResult{
		Suitable:            true,
		MatchPercentage:     82,
		MatchingNERKeywords: []string{"<aws>"},
	}}}

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, snap))

	out := buf.String()
	assert.Contains(t, out, "82% Match")
	assert.Contains(t, out, "match-percentage suitable")
	assert.Contains(t, out, SuitableText)
	assert.Contains(t, out, ResetLabel)
	assert.Contains(t, out, "&lt;aws&gt;")
	assert.NotContains(t, out, `action="/analyze"`)
}

func TestHTMLFormView(t *testing.T) {
	snap := form.Snapshot{
		File:         &form.File{Name: "cv.pdf"},
		Requirements: "Go, Kubernetes",
		Status:       form.Failed{Message: "Please upload a PDF file"},
	}

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, snap))

	out := buf.String()
	assert.Contains(t, out, `action="/analyze"`)
	assert.Contains(t, out, `<div class="file-info">cv.pdf</div>`)
	assert.Contains(t, out, ">Go, Kubernetes</textarea>")
	assert.Contains(t, out, `<div class="error-message">Please upload a PDF file</div>`)
	assert.Contains(t, out, SubmitLabel)
	assert.False(t, strings.Contains(out, " disabled"), "submit must be enabled")
	assert.NotContains(t, out, ResultsHeading)
}

func TestHTMLLoading(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, form.Snapshot{Status: form.Submitting{}}))

	out := buf.String()
	assert.Contains(t, out, " disabled>")
	assert.Contains(t, out, LoadingLabel)
	assert.NotContains(t, out, "error-message\">")
}
