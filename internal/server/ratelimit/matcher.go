package ratelimit

import "net/http"

// unlimited lists the routes that bypass rate limiting entirely.
var unlimited = map[string]bool{
	http.MethodGet + " /health": true,
}

// MatchEndpoint returns the configuration for the exact method and path, or nil
// when the route has no dedicated limit. Unlimited routes get a zero-limit config.
// Paths are compared literally, so "/reports" does not cover "/reports/stream".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	return nil
}
