package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/spigell/resume-parser/internal/backend"
	"github.com/spigell/resume-parser/internal/form"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").
		Funcs(template.FuncMap{
			"matchLabel":       MatchLabel,
			"suitability":      Suitability,
			"suitabilityClass": SuitabilityClass,
		}).
		ParseFS(templatesFS, "templates/page.html.tmpl"),
)

type page struct {
	Title           string
	Subtitle        string
	ResultsHeading  string
	KeywordsHeading string
	Placeholder     string
	SubmitLabel     string
	LoadingLabel    string
	ResetLabel      string

	Results      *backend.AnalysisResult
	FileName     string
	Requirements string
	Error        string
	Loading      bool
}

// HTML renders the widget page for the given form state.
func HTML(w io.Writer, snap form.Snapshot) error {
	p := page{
		Title:           Title,
		Subtitle:        Subtitle,
		ResultsHeading:  ResultsHeading,
		KeywordsHeading: KeywordsHeading,
		Placeholder:     RequirementsPlaceholder,
		SubmitLabel:     SubmitLabel,
		LoadingLabel:    LoadingLabel,
		ResetLabel:      ResetLabel,

		Results:      snap.Results(),
		Requirements: snap.Requirements,
		Error:        snap.Error(),
		Loading:      snap.IsLoading(),
	}

	if snap.File != nil {
		p.FileName = snap.File.Name
	}

	return pageTemplate.Execute(w, p)
}
