package features

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// DomainInfo is the part of a WHOIS record the features look at.
type DomainInfo struct {
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WhoisLookup fetches registration data for a registrable domain.
type WhoisLookup interface {
	Lookup(ctx context.Context, domain string) (DomainInfo, error)
}

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.0Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
	"02.01.2006",
}

func parseWhoisDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, l := range whoisDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// WhoisClient queries public WHOIS servers.
type WhoisClient struct {
	client *whois.Client
}

func NewWhoisClient(timeout time.Duration) *WhoisClient {
	c := whois.NewClient()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &WhoisClient{client: c}
}

func (w *WhoisClient) Lookup(ctx context.Context, domain string) (DomainInfo, error) {
	type result struct {
		info DomainInfo
		err  error
	}
	done := make(chan result, 1)
	go func() {
		info, err := w.lookup(domain)
		done <- result{info, err}
	}()

	select {
	case <-ctx.Done():
		return DomainInfo{}, ctx.Err()
	case r := <-done:
		return r.info, r.err
	}
}

func (w *WhoisClient) lookup(domain string) (DomainInfo, error) {
	raw, err := w.client.Whois(domain)
	if err != nil {
		return DomainInfo{}, fmt.Errorf("whois %s: %w", domain, err)
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil || parsed.Domain == nil {
		// Some registries only answer for the parent (e.g. a.b.example -> b.example).
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			return w.lookup(strings.Join(parts[1:], "."))
		}
		if err == nil {
			err = fmt.Errorf("no domain section")
		}
		return DomainInfo{}, fmt.Errorf("parse whois %s: %w", domain, err)
	}

	return DomainInfo{
		Domain:    strings.ToLower(parsed.Domain.Domain),
		CreatedAt: parseWhoisDate(parsed.Domain.CreatedDate),
		ExpiresAt: parseWhoisDate(parsed.Domain.ExpirationDate),
	}, nil
}

// Cache is the subset of a JSON cache the extractor needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedWhois memoises successful lookups.
type CachedWhois struct {
	next  WhoisLookup
	cache Cache
	ttl   time.Duration
}

func NewCachedWhois(next WhoisLookup, cache Cache, ttl time.Duration) *CachedWhois {
	return &CachedWhois{next: next, cache: cache, ttl: ttl}
}

func (c *CachedWhois) Lookup(ctx context.Context, domain string) (DomainInfo, error) {
	key := "whois:" + domain

	var info DomainInfo
	if ok, err := c.cache.Get(ctx, key, &info); err == nil && ok {
		return info, nil
	}

	info, err := c.next.Lookup(ctx, domain)
	if err != nil {
		return DomainInfo{}, err
	}
	_ = c.cache.Set(ctx, key, info, c.ttl)
	return info, nil
}

func domainRegLength(info *DomainInfo) float64 {
	if info == nil || info.CreatedAt.IsZero() || info.ExpiresAt.IsZero() {
		return Phishy
	}
	if info.ExpiresAt.Sub(info.CreatedAt) >= 365*24*time.Hour {
		return Legit
	}
	return Phishy
}

func ageOfDomain(info *DomainInfo, now time.Time) float64 {
	if info == nil || info.CreatedAt.IsZero() {
		return Phishy
	}
	if now.Sub(info.CreatedAt) >= 180*24*time.Hour {
		return Legit
	}
	return Phishy
}

func abnormalURL(p *parsedURL, info *DomainInfo) float64 {
	if info == nil || info.Domain == "" {
		return Phishy
	}
	if info.Domain == p.domain || sameSite(info.Domain, p.host) {
		return Legit
	}
	return Phishy
}
