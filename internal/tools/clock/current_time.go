package clock

import (
	"fmt"
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/tools/shared"
)

// DefaultTimezone is used when the model does not name one.
const DefaultTimezone = "Asia/Taipei"

// Input names the IANA timezone to report the current time for.
type Input struct {
	Timezone string `json:"timezone,omitempty" jsonschema:"IANA timezone name, defaults to Asia/Taipei"`
}

// Report formats the current time in the requested timezone.
func Report(input Input, now time.Time) shared.Result {
	tz := input.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return shared.Error(fmt.Sprintf("Unknown timezone %q: %v", tz, err))
	}

	formatted := now.In(loc).Format("2006-01-02 15:04:05 MST")
	return shared.Success(fmt.Sprintf("Current time in %s: %s", tz, formatted))
}

// NewCurrentTimeTool returns a tool reporting the current wall-clock time.
func NewCurrentTimeTool() (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name:        "get_current_time",
		Description: "Gets the current date and time in a given IANA timezone (defaults to Asia/Taipei)",
	}, func(ctx tool.Context, input Input) (shared.Result, error) {
		start := time.Now()
		return shared.Track("get_current_time", start, Report(input, start)), nil
	})
}
