package workflow

import (
	"strings"

	"hermes/pkg/errors"
	"hermes/pkg/templates"
)

const (
	defaultLanguage  = "Python"
	defaultFramework = "Generic"
	defaultQueryID   = "workflow/query"
)

// QueryData holds the variables exposed to query templates.
type QueryData struct {
	Language          string
	FileName          string
	Framework         string
	LanguageCodeBlock string
	CodeContent       string
	AnalysisFocus     []string
}

// SynthesizeQuery renders the user query for an agent run. The inline
// template from the request wins; otherwise the embedded default is used.
func SynthesizeQuery(tc TemplateConfig, job JobConfig, codeContent, fileName string) (string, error) {
	if codeContent == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "code content is empty")
	}

	language := job.InputConfig.Language
	if language == "" {
		language = defaultLanguage
	}
	framework := job.InputConfig.Framework
	if framework == "" {
		framework = defaultFramework
	}

	codeBlock, ok := tc.LanguageMapping[language]
	if !ok {
		codeBlock = strings.ToLower(language)
	}

	data := QueryData{
		Language:          language,
		FileName:          fileName,
		Framework:         framework,
		LanguageCodeBlock: codeBlock,
		CodeContent:       codeContent,
		AnalysisFocus:     job.AnalysisConfig.AnalysisFocus,
	}

	if tc.TemplateContent != "" {
		return templates.RenderString(tc.TemplateContent, data)
	}

	return templates.Get().Render(defaultQueryID, data)
}
