package ratelimit

import "strings"

// MatchEndpoint returns the configuration governing path and method, or nil when
// the default limit applies. Exact paths win over prefixes; a configured path
// ending in "/" matches everything below it. Health checks and CORS preflights
// are unlimited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	method = strings.ToUpper(method)
	if (path == "/health" && method == "GET") || method == "OPTIONS" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
