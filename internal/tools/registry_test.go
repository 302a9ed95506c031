package tools

import (
	"encoding/json"
	"testing"

	"hermes/internal/tools/clock"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	timeTool, err := clock.NewCurrentTimeTool()
	if err != nil {
		t.Fatalf("NewCurrentTimeTool failed: %v", err)
	}
	reg.Register("get_current_time", timeTool)

	got, ok := reg.Get("get_current_time")
	if !ok {
		t.Fatal("Expected tool to be registered")
	}
	if got.Name() != "get_current_time" {
		t.Errorf("Unexpected tool name: %q", got.Name())
	}

	if _, ok := reg.Get("nonexistent"); ok {
		t.Error("Expected missing tool lookup to fail")
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterAllTools(reg, Options{}); err != nil {
		t.Fatalf("RegisterAllTools failed: %v", err)
	}

	resolved, missing := reg.Resolve([]string{"get_current_time", "calculator", "no_such_tool"})
	if len(resolved) != 2 {
		t.Errorf("Expected 2 resolved tools, got %d", len(resolved))
	}
	if len(missing) != 1 || missing[0] != "no_such_tool" {
		t.Errorf("Expected no_such_tool missing, got %v", missing)
	}
}

func TestRegisterAllTools(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterAllTools(reg, Options{}); err != nil {
		t.Fatalf("RegisterAllTools failed: %v", err)
	}

	for _, name := range []string{"get_current_time", "get_temperature", "calculator"} {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("Expected %s to be registered", name)
		}
	}
}

func TestMarshalCatalog(t *testing.T) {
	data, err := MarshalCatalog()
	if err != nil {
		t.Fatalf("MarshalCatalog failed: %v", err)
	}

	var export struct {
		Tools []Definition `json:"tools"`
		Count int          `json:"count"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Catalog is not valid JSON: %v", err)
	}

	if export.Count != len(export.Tools) {
		t.Errorf("Count %d does not match tools %d", export.Count, len(export.Tools))
	}

	names := map[string]bool{}
	for _, def := range export.Tools {
		names[def.Name] = true
		if def.Description == "" || def.Category == "" {
			t.Errorf("Tool %s missing metadata", def.Name)
		}
	}
	if !names["get_temperature"] {
		t.Error("Expected get_temperature in catalog")
	}
}

func TestCatalogMatchesRegisteredTools(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterAllTools(reg, Options{}); err != nil {
		t.Fatalf("RegisterAllTools failed: %v", err)
	}

	for _, def := range Catalog() {
		if _, ok := reg.Get(def.Name); !ok {
			t.Errorf("Catalog tool %s is not registered", def.Name)
		}
	}
}
