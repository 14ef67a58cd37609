package features

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var shortenerHosts = map[string]struct{}{
	"bit.ly": {}, "goo.gl": {}, "shorte.st": {}, "go2l.ink": {}, "x.co": {}, "ow.ly": {},
	"t.co": {}, "tinyurl.com": {}, "tr.im": {}, "is.gd": {}, "cli.gs": {}, "yfrog.com": {},
	"migre.me": {}, "ff.im": {}, "tiny.cc": {}, "url4.eu": {}, "twit.ac": {}, "su.pr": {},
	"twurl.nl": {}, "snipurl.com": {}, "short.to": {}, "budurl.com": {}, "ping.fm": {},
	"post.ly": {}, "just.as": {}, "bkite.com": {}, "snipr.com": {}, "fic.kr": {},
	"loopt.us": {}, "doiop.com": {}, "short.ie": {}, "kl.am": {}, "wp.me": {}, "rubyurl.com": {},
	"om.ly": {}, "to.ly": {}, "bit.do": {}, "lnkd.in": {}, "db.tt": {}, "qr.ae": {},
	"adf.ly": {}, "bitly.com": {}, "cur.lv": {}, "ity.im": {}, "q.gs": {}, "po.st": {},
	"bc.vc": {}, "twitthis.com": {}, "u.to": {}, "j.mp": {}, "buzurl.com": {}, "cutt.us": {},
	"u.bb": {}, "yourls.org": {}, "prettylinkpro.com": {}, "scrnch.me": {}, "filoops.info": {},
	"vzturl.com": {}, "qr.net": {}, "1url.com": {}, "tweez.me": {}, "v.gd": {}, "link.zip.net": {},
	"rebrand.ly": {}, "cutt.ly": {}, "shorturl.at": {},
}

// Hosts and addresses that show up repeatedly in public phishing reports.
var (
	reportedHostSuffixes = []string{
		".at.ua", ".usa.cc", ".baltazarpresentes.com.br", ".pe.hu", ".esy.es", ".hol.es",
		".sweddy.com", ".myjino.ru", ".96.lt", ".ow.ly",
	}
	reportedIPs = map[string]struct{}{
		"146.112.61.108": {}, "213.174.157.151": {}, "121.50.168.88": {}, "192.185.217.116": {},
		"78.46.211.158": {}, "181.174.165.13": {}, "46.242.145.103": {}, "121.50.168.40": {},
		"83.125.22.219": {}, "46.242.145.98": {}, "107.151.148.44": {}, "107.151.148.107": {},
		"64.70.19.203": {}, "199.184.144.27": {}, "107.151.148.108": {}, "107.151.148.109": {},
		"119.28.52.61": {}, "54.83.43.69": {}, "52.69.166.231": {}, "216.58.192.225": {},
		"118.184.25.86": {}, "67.208.74.71": {}, "23.253.126.58": {}, "104.239.157.210": {},
		"175.126.123.219": {}, "141.8.224.221": {}, "10.10.10.10": {}, "43.229.108.32": {},
		"103.232.215.140": {}, "69.172.201.153": {}, "216.218.185.162": {}, "54.225.104.146": {},
		"103.243.24.98": {}, "199.59.243.120": {}, "31.170.160.61": {}, "213.19.128.77": {},
		"62.113.226.131": {}, "208.100.26.234": {}, "195.16.127.102": {}, "195.16.127.157": {},
		"34.196.13.28": {}, "103.224.212.222": {}, "172.217.4.225": {}, "54.72.9.51": {},
		"192.64.147.141": {}, "198.200.56.183": {}, "23.253.164.103": {}, "52.48.191.26": {},
		"52.214.197.72": {}, "87.98.255.18": {}, "209.99.17.27": {}, "216.38.62.18": {},
		"104.130.124.96": {}, "47.89.58.141": {}, "54.86.225.156": {},
		"54.82.156.19": {}, "37.157.192.102": {}, "204.11.56.48": {}, "110.34.231.42": {},
	}
	hexHostPattern = regexp.MustCompile(`^(0x[0-9a-fA-F]{1,2}\.){3}0x[0-9a-fA-F]{1,2}$`)
)

// parsedURL is a submitted URL broken into the parts lexical features need.
type parsedURL struct {
	raw    string
	u      *url.URL
	host   string // lowercase, no port
	port   string
	domain string // registrable domain
}

func parseURL(raw string) (*parsedURL, error) {
	candidate := strings.TrimSpace(raw)
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return nil, err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, errNoHost
	}
	return &parsedURL{
		raw:    raw,
		u:      u,
		host:   host,
		port:   u.Port(),
		domain: registrableDomain(host),
	}, nil
}

func isIPHost(host string) bool {
	return net.ParseIP(host) != nil || hexHostPattern.MatchString(host)
}

func usingIP(p *parsedURL) float64 {
	if isIPHost(p.host) {
		return Phishy
	}
	return Legit
}

func longURL(p *parsedURL) float64 {
	switch n := len(p.raw); {
	case n < 54:
		return Legit
	case n <= 75:
		return Suspicious
	default:
		return Phishy
	}
}

func shortURL(p *parsedURL) float64 {
	if _, ok := shortenerHosts[strings.TrimPrefix(p.host, "www.")]; ok {
		return Phishy
	}
	return Legit
}

func atSymbol(p *parsedURL) float64 {
	if strings.Contains(p.raw, "@") {
		return Phishy
	}
	return Legit
}

func doubleSlashRedirect(p *parsedURL) float64 {
	if strings.LastIndex(p.raw, "//") > 6 {
		return Phishy
	}
	return Legit
}

func prefixSuffix(p *parsedURL) float64 {
	if strings.Contains(p.host, "-") {
		return Phishy
	}
	return Legit
}

func subDomains(p *parsedURL) float64 {
	if isIPHost(p.host) {
		return Phishy
	}
	switch strings.Count(strings.TrimPrefix(p.host, "www."), ".") {
	case 0, 1:
		return Legit
	case 2:
		return Suspicious
	default:
		return Phishy
	}
}

func httpsScheme(p *parsedURL) float64 {
	if strings.EqualFold(p.u.Scheme, "https") {
		return Legit
	}
	return Phishy
}

func nonStdPort(p *parsedURL) float64 {
	if p.port == "" {
		return Legit
	}
	if n, err := strconv.Atoi(p.port); err == nil && (n == 80 || n == 443) {
		return Legit
	}
	return Phishy
}

func httpsInDomain(p *parsedURL) float64 {
	if strings.Contains(p.host, "https") {
		return Phishy
	}
	return Legit
}

func statsReport(p *parsedURL, ips []net.IP) float64 {
	for _, suffix := range reportedHostSuffixes {
		if strings.HasSuffix(p.host, suffix) || p.host == strings.TrimPrefix(suffix, ".") {
			return Phishy
		}
	}
	if _, ok := reportedIPs[p.host]; ok {
		return Phishy
	}
	for _, ip := range ips {
		if _, ok := reportedIPs[ip.String()]; ok {
			return Phishy
		}
	}
	return Legit
}
