package features

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxPageBytes = 2 << 20

var (
	statusBarPattern  = regexp.MustCompile(`(?is)onmouseover\s*=.*window\.status`)
	rightClickPattern = regexp.MustCompile(`event\.button\s*==\s*2`)
	popupPattern      = regexp.MustCompile(`(?i)\b(alert|window\.open)\s*\(`)
	mailPattern       = regexp.MustCompile(`(?i)(mailto:|mail\()`)
	iframePattern     = regexp.MustCompile(`(?i)<iframe|frameborder`)
)

// page is a fetched document plus what the fetch itself revealed.
type page struct {
	final     *url.URL
	doc       *goquery.Document
	html      string
	redirects int
}

// fetchPage GETs target, following and counting redirects.
func fetchPage(ctx context.Context, client *http.Client, target string) (*page, error) {
	redirects := 0
	c := *client
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		redirects = len(via)
		if len(via) >= 10 {
			return fmt.Errorf("stopped after %d redirects", len(via))
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; phishguard/1.0)")

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &page{
		final:     resp.Request.URL,
		doc:       doc,
		html:      string(body),
		redirects: redirects,
	}, nil
}

// hostOf resolves ref against the page URL and returns its host; relative
// references resolve to the page's own host.
func (pg *page) hostOf(ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	return pg.final.ResolveReference(u).Hostname()
}

func (pg *page) externalShare(p *parsedURL, refs []string) (float64, bool) {
	if len(refs) == 0 {
		return 0, false
	}
	external := 0
	for _, ref := range refs {
		if !sameSite(p.domain, pg.hostOf(ref)) {
			external++
		}
	}
	return float64(external) / float64(len(refs)) * 100, true
}

func attrs(doc *goquery.Document, selector, attr string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	})
	return out
}

func favicon(p *parsedURL, pg *page) float64 {
	icons := attrs(pg.doc, `link[rel~="icon"], link[rel="shortcut icon"]`, "href")
	if len(icons) == 0 {
		return Phishy
	}
	for _, href := range icons {
		if sameSite(p.domain, pg.hostOf(href)) {
			return Legit
		}
	}
	return Phishy
}

func requestURL(p *parsedURL, pg *page) float64 {
	refs := attrs(pg.doc, "img, audio, embed, iframe, video, source", "src")
	share, ok := pg.externalShare(p, refs)
	switch {
	case !ok, share < 22:
		return Legit
	case share < 61:
		return Suspicious
	default:
		return Phishy
	}
}

func anchorURL(p *parsedURL, pg *page) float64 {
	hrefs := attrs(pg.doc, "a", "href")
	if len(hrefs) == 0 {
		return Phishy
	}
	unsafe := 0
	for _, href := range hrefs {
		h := strings.ToLower(strings.TrimSpace(href))
		if strings.HasPrefix(h, "#") || strings.HasPrefix(h, "javascript") || strings.HasPrefix(h, "mailto") ||
			!sameSite(p.domain, pg.hostOf(href)) {
			unsafe++
		}
	}
	switch share := float64(unsafe) / float64(len(hrefs)) * 100; {
	case share < 31:
		return Legit
	case share < 67:
		return Suspicious
	default:
		return Phishy
	}
}

func linksInScriptTags(p *parsedURL, pg *page) float64 {
	refs := append(attrs(pg.doc, "link", "href"), attrs(pg.doc, "script", "src")...)
	share, ok := pg.externalShare(p, refs)
	switch {
	case !ok, share < 17:
		return Legit
	case share < 81:
		return Suspicious
	default:
		return Phishy
	}
}

func serverFormHandler(p *parsedURL, pg *page) float64 {
	forms := pg.doc.Find("form")
	if forms.Length() == 0 {
		return Legit
	}
	score := Legit
	forms.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		action := strings.TrimSpace(s.AttrOr("action", ""))
		if action == "" || strings.EqualFold(action, "about:blank") {
			score = Phishy
			return false
		}
		if !sameSite(p.domain, pg.hostOf(action)) {
			score = Suspicious
		}
		return true
	})
	return score
}

func infoEmail(pg *page) float64 {
	if mailPattern.MatchString(pg.html) {
		return Phishy
	}
	return Legit
}

func websiteForwarding(pg *page) float64 {
	switch {
	case pg.redirects <= 1:
		return Legit
	case pg.redirects <= 4:
		return Suspicious
	default:
		return Phishy
	}
}

func statusBarCust(pg *page) float64 {
	if statusBarPattern.MatchString(pg.html) {
		return Phishy
	}
	return Legit
}

func disableRightClick(pg *page) float64 {
	if rightClickPattern.MatchString(pg.html) {
		return Phishy
	}
	return Legit
}

func usingPopupWindow(pg *page) float64 {
	if popupPattern.MatchString(pg.html) {
		return Phishy
	}
	return Legit
}

func iframeRedirection(pg *page) float64 {
	if iframePattern.MatchString(pg.html) {
		return Phishy
	}
	return Legit
}

func linksPointingToPage(pg *page) float64 {
	switch n := pg.doc.Find("a[href]").Length(); {
	case n == 0:
		return Legit
	case n <= 2:
		return Suspicious
	default:
		return Phishy
	}
}
