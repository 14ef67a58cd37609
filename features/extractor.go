package features

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// URLExtractor computes the full vector: lexical features from the URL string,
// the rest from the fetched page, WHOIS and DNS, gathered concurrently.
type URLExtractor struct {
	Client   *http.Client
	Whois    WhoisLookup
	Resolver Resolver
	Timeout  time.Duration
	Now      func() time.Time
}

func NewURLExtractor(whois WhoisLookup, resolver Resolver, timeout time.Duration) *URLExtractor {
	return &URLExtractor{
		Client:   &http.Client{Timeout: timeout},
		Whois:    whois,
		Resolver: resolver,
		Timeout:  timeout,
		Now:      time.Now,
	}
}

func (e *URLExtractor) Extract(ctx context.Context, rawURL string) (Vector, error) {
	p, err := parseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var (
		pg     *page
		info   *DomainInfo
		ips    []net.IP
		dnsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := fetchPage(gctx, e.Client, p.u.String())
		if err != nil {
			return fmt.Errorf("fetch %s: %w", p.u.String(), err)
		}
		pg = fetched
		return nil
	})
	if e.Whois != nil && !isIPHost(p.host) {
		g.Go(func() error {
			if got, err := e.Whois.Lookup(gctx, p.domain); err == nil {
				info = &got
			}
			return nil
		})
	}
	if !isIPHost(p.host) {
		g.Go(func() error {
			if e.Resolver == nil {
				dnsErr = fmt.Errorf("no resolver")
				return nil
			}
			ips, dnsErr = e.Resolver.LookupIP(gctx, p.host)
			return nil
		})
	} else {
		dnsErr = fmt.Errorf("ip literal host")
		ips = []net.IP{net.ParseIP(p.host)}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	return Vector{
		usingIP(p),
		longURL(p),
		shortURL(p),
		atSymbol(p),
		doubleSlashRedirect(p),
		prefixSuffix(p),
		subDomains(p),
		httpsScheme(p),
		domainRegLength(info),
		favicon(p, pg),
		nonStdPort(p),
		httpsInDomain(p),
		requestURL(p, pg),
		anchorURL(p, pg),
		linksInScriptTags(p, pg),
		serverFormHandler(p, pg),
		infoEmail(pg),
		abnormalURL(p, info),
		websiteForwarding(pg),
		statusBarCust(pg),
		disableRightClick(pg),
		usingPopupWindow(pg),
		iframeRedirection(pg),
		ageOfDomain(info, now()),
		dnsRecording(ips, dnsErr),
		Suspicious, // WebsiteTraffic: no ranking source
		Suspicious, // PageRank
		Suspicious, // GoogleIndex
		linksPointingToPage(pg),
		statsReport(p, ips),
	}, nil
}
