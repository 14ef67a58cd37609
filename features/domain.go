package features

import (
	"errors"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var errNoHost = errors.New("url has no host")

// registrableDomain returns the eTLD+1 for host, or host itself when it has
// none (IP literals, single labels).
func registrableDomain(host string) string {
	if isIPHost(host) {
		return host
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

// sameSite reports whether a resource host belongs to the page's registrable domain.
func sameSite(pageDomain, resourceHost string) bool {
	resourceHost = strings.ToLower(resourceHost)
	if resourceHost == "" {
		return true
	}
	return resourceHost == pageDomain || strings.HasSuffix(resourceHost, "."+pageDomain)
}
