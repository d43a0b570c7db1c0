package recipient

import (
	"errors"
	"net/url"
	"strings"

	"github.com/alexmorbo/slack-notifier/domain/notification"
)

var ErrRouteNotAllowed = errors.New("route host not allowed")

// Allowlist restricts webhook routes to https URLs on known hosts.
// Token routes are posted to the configured API URL and always pass.
type Allowlist struct {
	hosts map[string]struct{}
}

func NewAllowlist(hosts []string) Allowlist {
	a := Allowlist{hosts: make(map[string]struct{}, len(hosts))}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			a.hosts[h] = struct{}{}
		}
	}
	return a
}

func (a Allowlist) Check(route string) error {
	if notification.IsToken(route) {
		return nil
	}

	u, err := url.Parse(route)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return ErrRouteNotAllowed
	}
	if _, ok := a.hosts[strings.ToLower(u.Hostname())]; !ok || u.Port() != "" {
		return ErrRouteNotAllowed
	}
	return nil
}
