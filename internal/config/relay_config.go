package config

import "strings"

const publicPathsVar = "RELAY_PUBLIC_PATHS"

// RelayConfig describes how the /api/proxy relay builds upstream URLs.
type RelayConfig interface {
	GetPublicPaths() PublicPaths
}

// PublicPaths is the set of backend route suffixes that are identity
// agnostic: the relay never appends the admin id to them. The backend
// contract owns this list, so it is configuration rather than code.
type PublicPaths map[string]struct{}

func (p PublicPaths) IsPublic(path string) bool {
	_, ok := p[path]
	return ok
}

func (p PublicPaths) String() string {
	var paths []string
	for k := range p {
		paths = append(paths, k)
	}
	return strings.Join(paths, ", ")
}

type Relay struct{}

var _ RelayConfig = Relay{}

// GetPublicPaths parses RELAY_PUBLIC_PATHS (comma separated). The default
// matches the two listing routes the backend documents as global.
func (Relay) GetPublicPaths() PublicPaths {
	raw := GetEnv(publicPathsVar, "all/category,top/selling")
	paths := make(PublicPaths)
	for _, p := range strings.Split(raw, ",") {
		p = strings.Trim(strings.TrimSpace(p), "/")
		if p == "" {
			continue
		}
		paths[p] = struct{}{}
	}
	return paths
}
