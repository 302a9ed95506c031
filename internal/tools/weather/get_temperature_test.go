package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleResponse = `{
	"current_condition": [{
		"temp_C": "25",
		"FeelsLikeC": "27",
		"humidity": "60",
		"weatherDesc": [{"value": "Partly cloudy"}],
		"windspeedKmph": "12",
		"winddir16Point": "NE"
	}],
	"nearest_area": [{
		"areaName": [{"value": "Taipei"}],
		"country": [{"value": "Taiwan"}],
		"region": [{"value": "T'ai-pei"}]
	}]
}`

func TestGetTemperature_Success(t *testing.T) {
	var gotPath, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("User-Agent")
		if r.URL.Query().Get("format") != "j1" {
			t.Errorf("Expected format=j1, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	svc := NewService(server.URL, server.Client())
	result := svc.GetTemperature(context.Background(), "Taipei")

	if result.Status != "success" {
		t.Fatalf("Expected success, got %+v", result)
	}
	if gotPath != "/Taipei" {
		t.Errorf("Unexpected request path: %q", gotPath)
	}
	if !strings.HasPrefix(gotUserAgent, "curl/") {
		t.Errorf("Expected curl user agent, got %q", gotUserAgent)
	}

	for _, want := range []string{
		"Taipei, T'ai-pei, Taiwan",
		"Temperature: 25°C",
		"Feels like: 27°C",
		"Humidity: 60%",
		"Conditions: Partly cloudy",
		"Wind: 12 km/h NE",
	} {
		if !strings.Contains(result.Report, want) {
			t.Errorf("Report missing %q:\n%s", want, result.Report)
		}
	}
}

func TestGetTemperature_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewService(server.URL, server.Client())
	result := svc.GetTemperature(context.Background(), "Nowhere")

	if result.Status != "error" {
		t.Fatalf("Expected error, got %+v", result)
	}
	if !strings.Contains(result.ErrorMessage, "404") {
		t.Errorf("Expected status code in message, got %q", result.ErrorMessage)
	}
}

func TestGetTemperature_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_condition": []}`))
	}))
	defer server.Close()

	svc := NewService(server.URL, server.Client())
	result := svc.GetTemperature(context.Background(), "Taipei")

	if result.Status != "error" {
		t.Fatalf("Expected error, got %+v", result)
	}
}

func TestGetTemperature_EmptyLocation(t *testing.T) {
	svc := NewService("", nil)
	result := svc.GetTemperature(context.Background(), "")

	if result.Status != "error" {
		t.Fatalf("Expected error, got %+v", result)
	}
}

func TestGetTemperature_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	svc := NewService(server.URL, nil)
	result := svc.GetTemperature(context.Background(), "Taipei")

	if result.Status != "error" {
		t.Fatalf("Expected error, got %+v", result)
	}
	if !strings.Contains(result.ErrorMessage, "Network error") {
		t.Errorf("Expected network error message, got %q", result.ErrorMessage)
	}
}
