package features

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
)

// Resolver returns the addresses published for a host.
type Resolver interface {
	LookupIP(ctx context.Context, host string) ([]net.IP, error)
}

// DNSResolver asks the first nameserver in resolv.conf directly and falls back
// to the system resolver when none is configured.
type DNSResolver struct {
	client     *dns.Client
	nameserver string
}

func NewDNSResolver(timeout time.Duration) *DNSResolver {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	r := &DNSResolver{
		client: &dns.Client{
			Net:          "udp",
			Timeout:      timeout,
			DialTimeout:  timeout,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
	if conf, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(conf.Servers) > 0 {
		r.nameserver = net.JoinHostPort(conf.Servers[0], conf.Port)
	}
	return r
}

func (r *DNSResolver) LookupIP(ctx context.Context, host string) ([]net.IP, error) {
	if r.nameserver == "" {
		return net.DefaultResolver.LookupIP(ctx, "ip", host)
	}

	var ips []net.IP
	var lastErr error
	for _, qt := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), qt)
		resp, _, err := r.client.ExchangeContext(ctx, msg, r.nameserver)
		if err != nil {
			lastErr = err
			continue
		}
		for _, rr := range resp.Answer {
			switch rec := rr.(type) {
			case *dns.A:
				ips = append(ips, rec.A)
			case *dns.AAAA:
				ips = append(ips, rec.AAAA)
			}
		}
	}
	if len(ips) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return ips, nil
}

func dnsRecording(ips []net.IP, lookupErr error) float64 {
	if lookupErr != nil || len(ips) == 0 {
		return Phishy
	}
	return Legit
}
