package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address carries a deliverable-looking
// domain: an MX record, or at least a resolvable host. Typo domains fail
// here before an account gets created.
func IsEmailDomainValid(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	// Some small providers receive mail on the A record directly.
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
