// Package predicatedns provides a minimal smartpoll.Predicate built on a DNS
// TXT record lookup: one zone publishes "active", the rest publish anything
// else (or nothing), and every process queries the same name. Deliberately
// stdlib-only: there is no ecosystem dependency for a single TXT lookup
// beyond net.Resolver.
package predicatedns

import (
	"context"
	"fmt"
	"net"
)

// Predicate looks up a DNS TXT record and reports the zone active if any
// returned value equals ActiveValue.
type Predicate struct {
	// Resolver performs the lookup. Defaults to net.DefaultResolver if nil.
	Resolver *net.Resolver
	// Name is the DNS name to query for TXT records, e.g.
	// "_active-zone.us-east-1.example.internal".
	Name string
	// ActiveValue is the TXT record value that indicates this zone is
	// active. Defaults to "active" if empty.
	ActiveValue string
}

// New constructs a Predicate for name, using net.DefaultResolver and the
// default active value ("active").
func New(name string) *Predicate {
	return &Predicate{Name: name}
}

// FetchActiveZone implements smartpoll.Predicate.
func (p *Predicate) FetchActiveZone(ctx context.Context) (bool, error) {
	resolver := p.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	active := p.ActiveValue
	if active == "" {
		active = "active"
	}

	records, err := resolver.LookupTXT(ctx, p.Name)
	if err != nil {
		return false, fmt.Errorf("predicatedns: lookup %q: %w", p.Name, err)
	}
	return interpret(records, active), nil
}

// interpret reports whether any of records equals active.
func interpret(records []string, active string) bool {
	for _, record := range records {
		if record == active {
			return true
		}
	}
	return false
}
