package calc

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
)

// Input carries the operands and operator for a basic arithmetic operation.
type Input struct {
	A  float64 `json:"a" jsonschema:"first operand"`
	B  float64 `json:"b" jsonschema:"second operand"`
	Op string  `json:"op" jsonschema:"operator, one of: + - * /"`
}

// Output carries the computed value.
type Output struct {
	Result float64 `json:"result"`
}

// Compute evaluates a single binary arithmetic operation.
func Compute(in Input) (Output, error) {
	switch strings.TrimSpace(in.Op) {
	case "+":
		return Output{Result: in.A + in.B}, nil
	case "-":
		return Output{Result: in.A - in.B}, nil
	case "*":
		return Output{Result: in.A * in.B}, nil
	case "/":
		if in.B == 0 {
			return Output{}, fmt.Errorf("invalid argument: b must not be 0 for division")
		}
		return Output{Result: in.A / in.B}, nil
	default:
		return Output{}, fmt.Errorf("invalid argument: op must be one of: + - * /")
	}
}

// NewCalculatorTool returns a tool performing basic arithmetic.
func NewCalculatorTool() (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name:        "calculator",
		Description: "Performs basic arithmetic on two numbers. Parameters a/b are numbers, op is one of + - * /.",
	}, func(ctx tool.Context, in Input) (Output, error) {
		start := time.Now()
		out, err := Compute(in)

		metrics.ToolLatency.WithLabelValues("calculator").Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.ToolExecutions.WithLabelValues("calculator", status).Inc()

		return out, err
	})
}
