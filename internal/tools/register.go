package tools

import (
	"net/http"

	"hermes/internal/tools/calc"
	"hermes/internal/tools/clock"
	"hermes/internal/tools/weather"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// Options configures tool construction.
type Options struct {
	WeatherBaseURL string       // empty selects wttr.in
	HTTPClient     *http.Client // nil selects a default client
}

// RegisterAllTools builds every tool and registers it by name.
func RegisterAllTools(reg *Registry, opts Options) error {
	log := logger.Get().With("component", "tools")

	timeTool, err := clock.NewCurrentTimeTool()
	if err != nil {
		return errors.Wrap(err, "create get_current_time tool")
	}
	reg.Register("get_current_time", timeTool)

	weatherSvc := weather.NewService(opts.WeatherBaseURL, opts.HTTPClient)
	tempTool, err := weather.NewGetTemperatureTool(weatherSvc)
	if err != nil {
		return errors.Wrap(err, "create get_temperature tool")
	}
	reg.Register("get_temperature", tempTool)

	calcTool, err := calc.NewCalculatorTool()
	if err != nil {
		return errors.Wrap(err, "create calculator tool")
	}
	reg.Register("calculator", calcTool)

	log.Info("Registered tools", "count", len(reg.List()))
	return nil
}
