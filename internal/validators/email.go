package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// Resolver is the subset of *net.Resolver the domain check needs.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomain reports whether the part after "@" resolves to a mail
// exchanger or, failing that, to any address.
type EmailDomain struct {
	resolver Resolver
	timeout  time.Duration
}

func NewEmailDomain(r Resolver) *EmailDomain {
	if r == nil {
		r = net.DefaultResolver
	}
	return &EmailDomain{resolver: r, timeout: lookupTimeout}
}

func emailDomain(email string) (string, bool) {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}

	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") {
		return "", false
	}
	return domain, true
}

func (v *EmailDomain) Valid(email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := v.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// IsEmailDomainValid checks email against the system resolver.
func IsEmailDomainValid(email string) bool {
	return NewEmailDomain(nil).Valid(email)
}
