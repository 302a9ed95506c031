package agents

import (
	"encoding/json"
	"os"

	"hermes/pkg/errors"
)

// ParseConfig decodes and validates an agent config document. A missing
// class defaults to a plain LLM agent.
func ParseConfig(data []byte) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse agent config")
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *AgentConfig) {
	if cfg.Class == "" {
		cfg.Class = ClassLLM
	}
	for _, sub := range cfg.SubAgents {
		applyDefaults(sub)
	}
}

// LoadConfig reads and validates an agent config from a JSON file.
func LoadConfig(path string) (*AgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read agent config %s", path)
	}
	return ParseConfig(data)
}

// SaveConfig writes an agent config to a JSON file, pretty-printed so the
// files stay hand-editable.
func SaveConfig(cfg *AgentConfig, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshal agent config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write agent config %s", path)
	}

	return nil
}
