// Package keywords maintains role -> expected-keyword profiles used by
// the suggestion engine's keyword coverage check.
package keywords

import (
	"strings"
	"sync"
)

// DefaultRole is the profile used for any non-empty role without its
// own entry.
const DefaultRole = "default"

// builtinProfiles maps a lowercased role name to the ordered keyword
// list the engine checks for. Order matters: missing keywords are
// reported in profile order.
var builtinProfiles = map[string][]string{
	"software engineer": {"JavaScript", "Python", "React", "Node.js", "API", "Git", "Agile"},
	"data scientist":    {"Python", "SQL", "Machine Learning", "Statistics", "Pandas", "Visualization"},
	"product manager":   {"Roadmap", "Stakeholder", "Prioritization", "Metrics", "User Research", "Agile"},
	"devops engineer":   {"Kubernetes", "Docker", "CI/CD", "Terraform", "AWS", "Monitoring", "Linux"},
	DefaultRole:         {"Leadership", "Problem Solving", "Communication", "Teamwork", "Project Management"},
}

// Registry resolves keyword profiles by role. It starts with the
// builtin table and can be overlaid with profiles loaded from a YAML
// file, optionally hot-reloaded by a Watcher.
type Registry struct {
	mu       sync.RWMutex
	overlays map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// ProfileFor returns the keyword list for role. The role is matched
// case-insensitively after trimming whitespace. An empty role returns
// nil, which disables the keyword check entirely; an unknown role falls
// back to the default profile.
func (r *Registry) ProfileFor(role string) []string {
	key := strings.ToLower(strings.TrimSpace(role))
	if key == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.overlays != nil {
		if kws, ok := r.overlays[key]; ok {
			return cloneList(kws)
		}
	}
	if kws, ok := builtinProfiles[key]; ok {
		return cloneList(kws)
	}
	if r.overlays != nil {
		if kws, ok := r.overlays[DefaultRole]; ok {
			return cloneList(kws)
		}
	}
	return cloneList(builtinProfiles[DefaultRole])
}

// Roles returns the set of known role names, builtin plus overlays.
func (r *Registry) Roles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(builtinProfiles)+len(r.overlays))
	var roles []string
	for role := range builtinProfiles {
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}
	for role := range r.overlays {
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}
	return roles
}

// setOverlays replaces the file-loaded profiles wholesale. Keys are
// normalized to lowercase so lookups stay case-insensitive.
func (r *Registry) setOverlays(profiles map[string][]string) {
	normalized := make(map[string][]string, len(profiles))
	for role, kws := range profiles {
		normalized[strings.ToLower(strings.TrimSpace(role))] = cloneList(kws)
	}

	r.mu.Lock()
	r.overlays = normalized
	r.mu.Unlock()
}

func cloneList(kws []string) []string {
	if kws == nil {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}
