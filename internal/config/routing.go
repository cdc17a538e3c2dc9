// Package config holds the lifecycle and delivery tuning constants plus the
// forum routing table mapping (server, affiliation) to a create-thread URL.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed routing.yaml
var defaultRouting []byte

// ForumRouting maps server id -> affiliation -> forum create-thread URL.
type ForumRouting struct {
	Servers map[string]map[string]string `yaml:"servers"`
}

// LoadRouting reads the routing table from path, or the embedded default when
// path is empty.
func LoadRouting(path string) (*ForumRouting, error) {
	raw := defaultRouting
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read routing table: %w", err)
		}
	}
	var r ForumRouting
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("config: parse routing table: %w", err)
	}
	return &r, nil
}

// URL resolves the forum section for a server and affiliation combination.
func (r *ForumRouting) URL(server, affiliation string) (string, bool) {
	sections, ok := r.Servers[server]
	if !ok {
		return "", false
	}
	url, ok := sections[affiliation]
	return url, ok
}
