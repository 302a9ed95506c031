package agents

import (
	"sync"

	"google.golang.org/adk/agent"
)

// Registry stores built agents by name for quick lookup.
type Registry struct {
	agents map[string]agent.Agent
	mu     sync.RWMutex
}

// NewRegistry constructs an empty agent registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]agent.Agent)}
}

// Register adds or replaces an agent entry.
func (r *Registry) Register(name string, ag agent.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[name] = ag
}

// Get retrieves an agent by name.
func (r *Registry) Get(name string) (agent.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ag, ok := r.agents[name]
	return ag, ok
}

// List returns registered agent names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, 0, len(r.agents))
	for name := range r.agents {
		res = append(res, name)
	}

	return res
}
