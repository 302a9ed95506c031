// Package workflow executes configured agent hierarchies against code
// inputs: it validates the agent configuration, synthesizes the user
// query from a template, runs the agent, and persists the results.
package workflow

import (
	"encoding/json"
	"time"
)

// Request is the payload of a workflow run. The agent configuration is
// kept raw here and parsed by the agents package.
type Request struct {
	JobConfig      JobConfig       `json:"job_config" yaml:"job_config"`
	AgentConfig    json.RawMessage `json:"agent_config" yaml:"agent_config"`
	TemplateConfig TemplateConfig  `json:"template_config" yaml:"template_config"`
}

// JobConfig describes what to analyze and how.
type JobConfig struct {
	JobName        string         `json:"job_name" yaml:"job_name"`
	InputConfig    InputConfig    `json:"input_config" yaml:"input_config"`
	AnalysisConfig AnalysisConfig `json:"analysis_config" yaml:"analysis_config"`
	OutputConfig   OutputConfig   `json:"output_config" yaml:"output_config"`
}

// InputConfig carries the code under analysis. Inline content takes
// precedence over the input file path.
type InputConfig struct {
	Language    string `json:"language" yaml:"language"`
	Framework   string `json:"framework" yaml:"framework"`
	FileName    string `json:"file_name" yaml:"file_name"`
	InputFile   string `json:"input_file" yaml:"input_file"`
	CodeContent string `json:"code_content" yaml:"code_content"`
}

// AnalysisConfig narrows what the agents should look at.
type AnalysisConfig struct {
	AnalysisFocus []string `json:"analysis_focus" yaml:"analysis_focus"`
}

// OutputConfig controls where result files land.
type OutputConfig struct {
	Directory  string `json:"output_directory" yaml:"output_directory"`
	FileNaming string `json:"file_naming" yaml:"file_naming"`
}

// TemplateConfig carries the inline query template. When TemplateContent
// is empty the embedded default template is used.
type TemplateConfig struct {
	TemplateContent string            `json:"template_content" yaml:"template_content"`
	LanguageMapping map[string]string `json:"language_mapping" yaml:"language_mapping"`
}

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Response is returned to workflow callers.
type Response struct {
	Status           string            `json:"status"`
	RunID            string            `json:"run_id,omitempty"`
	OutputFile       string            `json:"output_file,omitempty"`
	JSONFile         string            `json:"json_file,omitempty"`
	EventsGenerated  int               `json:"events_generated,omitempty"`
	ResponseLength   int               `json:"response_length,omitempty"`
	ExecutionResults map[string]string `json:"execution_results,omitempty"`
	Warnings         []string          `json:"warnings,omitempty"`
	ErrorMessage     string            `json:"error_message,omitempty"`
}

// RunRecord is the persisted summary of a workflow run.
type RunRecord struct {
	ID            string        `json:"id" db:"id"`
	JobName       string        `json:"job_name" db:"job_name"`
	AgentName     string        `json:"agent_name" db:"agent_name"`
	Status        string        `json:"status" db:"status"`
	FinalResponse string        `json:"final_response" db:"final_response"`
	Events        int           `json:"events" db:"events"`
	ToolCalls     int           `json:"tool_calls" db:"tool_calls"`
	InputTokens   int           `json:"input_tokens" db:"input_tokens"`
	OutputTokens  int           `json:"output_tokens" db:"output_tokens"`
	Duration      time.Duration `json:"duration" db:"duration_ns"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}
