package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/tools/shared"
	"hermes/pkg/logger"
)

// DefaultBaseURL points at wttr.in, a free weather service without API keys.
const DefaultBaseURL = "https://wttr.in"

// Service fetches current weather conditions from a wttr.in-compatible
// endpoint.
type Service struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewService creates a weather service. An empty baseURL selects wttr.in.
func NewService(baseURL string, client *http.Client) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     logger.Get().With("component", "weather_service"),
	}
}

// wttrResponse mirrors the subset of the wttr.in format=j1 payload we read.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		FeelsLikeC  string `json:"FeelsLikeC"`
		Humidity    string `json:"humidity"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
		WindspeedKmph  string `json:"windspeedKmph"`
		Winddir16Point string `json:"winddir16Point"`
	} `json:"current_condition"`
	NearestArea []struct {
		AreaName []struct {
			Value string `json:"value"`
		} `json:"areaName"`
		Country []struct {
			Value string `json:"value"`
		} `json:"country"`
		Region []struct {
			Value string `json:"value"`
		} `json:"region"`
	} `json:"nearest_area"`
}

// GetTemperature fetches current conditions for a location. Failures are
// reported in the result rather than as an error so agents can recover.
func (s *Service) GetTemperature(ctx context.Context, location string) shared.Result {
	if location == "" {
		return shared.Error("Location is required")
	}

	reqURL := fmt.Sprintf("%s/%s?format=j1", s.baseURL, url.PathEscape(location))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return shared.Error(fmt.Sprintf("Failed to build weather request: %v", err))
	}
	// wttr.in serves HTML unless the client looks like curl
	req.Header.Set("User-Agent", "curl/7.68.0")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("Weather request failed", "location", location, "error", err)
		return shared.Error(fmt.Sprintf("Network error occurred: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return shared.Error(fmt.Sprintf(
			"Weather service returned status code %d. Location %q might not be found or service is temporarily unavailable.",
			resp.StatusCode, location))
	}

	var data wttrResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return shared.Error(fmt.Sprintf("Failed to parse weather data: %v", err))
	}

	if len(data.CurrentCondition) == 0 {
		return shared.Error(fmt.Sprintf("Unexpected weather data format. Location %q might not be found.", location))
	}

	current := data.CurrentCondition[0]
	description := ""
	if len(current.WeatherDesc) > 0 {
		description = current.WeatherDesc[0].Value
	}

	locationStr := location
	if len(data.NearestArea) > 0 {
		area := data.NearestArea[0]
		name, region, country := "", "", ""
		if len(area.AreaName) > 0 {
			name = area.AreaName[0].Value
		}
		if len(area.Region) > 0 {
			region = area.Region[0].Value
		}
		if len(area.Country) > 0 {
			country = area.Country[0].Value
		}
		if name != "" {
			locationStr = name
			if region != "" && region != name {
				locationStr += ", " + region
			}
			if country != "" {
				locationStr += ", " + country
			}
		}
	}

	report := fmt.Sprintf(
		"Weather in %s:\n"+
			"- Temperature: %s°C\n"+
			"- Feels like: %s°C\n"+
			"- Humidity: %s%%\n"+
			"- Conditions: %s\n"+
			"- Wind: %s km/h %s",
		locationStr, current.TempC, current.FeelsLikeC, current.Humidity,
		description, current.WindspeedKmph, current.Winddir16Point)

	return shared.Success(report)
}

// Input names the location to fetch weather for.
type Input struct {
	Location string `json:"location" jsonschema:"city or location name to get the temperature for"`
}

// NewGetTemperatureTool returns a tool reporting current weather conditions.
func NewGetTemperatureTool(svc *Service) (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name:        "get_temperature",
		Description: "Gets the current temperature and weather conditions for a location (no API key required)",
	}, func(ctx tool.Context, input Input) (shared.Result, error) {
		start := time.Now()
		return shared.Track("get_temperature", start, svc.GetTemperature(ctx, input.Location)), nil
	})
}
