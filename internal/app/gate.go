package app

import (
	"net/url"
	"strings"
)

// namedRoutes is the route table the acceptance gate resolves against when
// no explicit URL is configured, keyed by route name.
var namedRoutes = map[string]string{
	"legal.accept": "/api/legal/accept",
	"legal.gate":   "/api/legal/gate",
}

const acceptanceRouteName = "legal.accept"

// defaultAcceptancePath is the last-resort gate target when neither an
// explicit URL nor a named route is available.
const defaultAcceptancePath = "/legal/accept"

// AcceptanceURL resolves where non-compliant users are sent. Resolution
// order: explicit configuration value, then the named-route table, then
// the hard-coded default path.
func (s *Service) AcceptanceURL() string {
	if configured := strings.TrimSpace(s.cfg.AcceptanceURL); configured != "" {
		return configured
	}
	if path, ok := namedRoutes[acceptanceRouteName]; ok {
		return path
	}
	return defaultAcceptancePath
}

// GateRedirect builds the redirect target for a non-compliant request,
// carrying the original destination in the next parameter. The separator
// depends on whether the acceptance URL already has a query string.
func (s *Service) GateRedirect(next string) string {
	acceptanceURL := s.AcceptanceURL()
	separator := "?"
	if strings.Contains(acceptanceURL, "?") {
		separator = "&"
	}
	return acceptanceURL + separator + "next=" + url.QueryEscape(next)
}
