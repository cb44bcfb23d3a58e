package main

import (
	"net/url"
	"strings"
)

// matchCORSOrigin reports whether origin is allowed by patterns. A pattern is
// "*", an exact origin, or a scheme plus "*." subdomain wildcard such as
// "https://*.example.com", which does not match the bare domain.
func matchCORSOrigin(origin string, patterns []string) bool {
	o, err := url.Parse(origin)
	if err != nil || o.Scheme == "" || o.Host == "" {
		return false
	}
	for _, p := range patterns {
		if p == "*" {
			return true
		}
		if p == origin {
			return true
		}
		scheme, host, ok := strings.Cut(p, "://")
		if !ok || scheme != o.Scheme || !strings.HasPrefix(host, "*.") {
			continue
		}
		if _, err := url.Parse(p); err != nil {
			continue
		}
		if strings.HasSuffix(o.Host, host[1:]) {
			return true
		}
	}
	return false
}
