package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hermes/pkg/errors"
	"hermes/pkg/markdowntext"
)

const defaultFileNaming = "code_analysis_{input_filename}_{timestamp}"

// ResultsWriter persists run outputs as a markdown report plus a JSON
// document with the full metadata.
type ResultsWriter struct {
	baseDir string
	now     func() time.Time
}

// NewResultsWriter creates a writer rooted at baseDir.
func NewResultsWriter(baseDir string) *ResultsWriter {
	return &ResultsWriter{baseDir: baseDir, now: time.Now}
}

// ResultFiles holds the paths of the written artifacts.
type ResultFiles struct {
	OutputFile string
	JSONFile   string
}

type resultDocument struct {
	JobName         string            `json:"job_name"`
	AgentName       string            `json:"agent_name"`
	InputFile       string            `json:"input_file"`
	AnalysisDate    string            `json:"analysis_date"`
	EventsGenerated int               `json:"events_generated"`
	ToolCalls       int               `json:"tool_calls"`
	TokensUsed      int               `json:"tokens_used"`
	Responses       map[string]string `json:"responses"`
}

// Write stores the run outputs and returns the resulting file paths.
func (w *ResultsWriter) Write(job JobConfig, agentName, fileName string, responses map[string]string, events, toolCalls, tokens int) (*ResultFiles, error) {
	dir := job.OutputConfig.Directory
	if dir == "" {
		dir = w.baseDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create results directory")
	}

	naming := job.OutputConfig.FileNaming
	if naming == "" {
		naming = defaultFileNaming
	}

	now := w.now()
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base := strings.NewReplacer(
		"{input_filename}", stem,
		"{timestamp}", now.Format("20060102_150405"),
	).Replace(naming)

	doc := resultDocument{
		JobName:         job.JobName,
		AgentName:       agentName,
		InputFile:       fileName,
		AnalysisDate:    now.Format("2006-01-02 15:04:05"),
		EventsGenerated: events,
		ToolCalls:       toolCalls,
		TokensUsed:      tokens,
		Responses:       responses,
	}

	files := &ResultFiles{
		OutputFile: filepath.Join(dir, base+".md"),
		JSONFile:   filepath.Join(dir, base+".json"),
	}

	if err := os.WriteFile(files.OutputFile, []byte(renderMarkdownReport(doc)), 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write markdown report")
	}

	jsonData, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal result document")
	}
	if err := os.WriteFile(files.JSONFile, jsonData, 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write json result")
	}

	return files, nil
}

func renderMarkdownReport(doc resultDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.JobName)
	fmt.Fprintf(&b, "Agent: %s\n", doc.AgentName)
	fmt.Fprintf(&b, "Input: %s\n", doc.InputFile)
	fmt.Fprintf(&b, "Analysis Date: %s\n", doc.AnalysisDate)
	fmt.Fprintf(&b, "Events: %d | Tool calls: %d | Tokens: %d\n", doc.EventsGenerated, doc.ToolCalls, doc.TokensUsed)

	authors := make([]string, 0, len(doc.Responses))
	for author := range doc.Responses {
		authors = append(authors, author)
	}
	sort.Strings(authors)

	for _, author := range authors {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", author, doc.Responses[author])

		// Markdown tables inside responses render poorly in plain viewers,
		// so append an aligned text rendering when any are present.
		if tables := markdowntext.RenderTables(doc.Responses[author], markdowntext.DefaultMaxColumnWidth); tables != "" {
			fmt.Fprintf(&b, "\n### Tables (plain text)\n\n```\n%s```\n", tables)
		}
	}

	return b.String()
}
