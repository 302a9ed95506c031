package tools

import (
	"encoding/json"
	"sort"
)

// Definition describes a tool's metadata for registration and documentation.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var toolDefinitions = []Definition{
	{Name: "get_current_time", Description: "Gets the current date and time in a given IANA timezone (defaults to Asia/Taipei)", Category: "time"},
	{Name: "get_temperature", Description: "Gets the current temperature and weather conditions for a location (no API key required)", Category: "weather"},
	{Name: "calculator", Description: "Performs basic arithmetic on two numbers. Parameters a/b are numbers, op is one of + - * /.", Category: "math"},
}

// Catalog returns the full tool definition list.
func Catalog() []Definition {
	defs := make([]Definition, len(toolDefinitions))
	copy(defs, toolDefinitions)
	return defs
}

// CatalogByCategory groups tool definitions by category.
func CatalogByCategory() map[string][]Definition {
	byCategory := make(map[string][]Definition)
	for _, def := range toolDefinitions {
		byCategory[def.Category] = append(byCategory[def.Category], def)
	}
	return byCategory
}

// catalogExport is the JSON document served at /tools and printed by the
// toolcatalog command.
type catalogExport struct {
	Tools      []Definition `json:"tools"`
	Categories []string     `json:"categories"`
	Count      int          `json:"count"`
}

// MarshalCatalog renders the tool catalog as indented JSON.
func MarshalCatalog() ([]byte, error) {
	byCategory := CatalogByCategory()
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return json.MarshalIndent(catalogExport{
		Tools:      Catalog(),
		Categories: categories,
		Count:      len(toolDefinitions),
	}, "", "  ")
}
