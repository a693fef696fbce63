// Package goquery provides HTML email extraction backed by goquery and
// go-emailaddress.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mcnijman/go-emailaddress"

	"github.com/Mirnes420/leadgen"
)

// Ensure Extractor implements leadgen.EmailExtractor at compile time.
var _ leadgen.EmailExtractor = (*Extractor)(nil)

// assetExtensions are trailing segments that indicate an asset URL shaped
// like an email address (e.g. image@2x.png) rather than a real mailbox.
var assetExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp",
	".pdf", ".css", ".woff", ".woff2",
}

// Extractor scans HTML documents for well-formed email addresses.
// The zero value is usable; Extractor is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the deduplicated addresses found in the markup.
//
// Two strategies are combined: mailto: hrefs located via goquery (these
// survive even when the address is never rendered as text), and a regex
// scan over the full raw markup so addresses in hidden elements and
// attribute values are caught too. Matches whose trailing segment looks
// like a file extension are discarded to suppress asset-URL false
// positives. Extract never fails; an unparseable document contributes
// nothing.
func (e *Extractor) Extract(html string) []string {
	seen := make(map[string]bool)
	var emails []string

	add := func(raw string) {
		addr := strings.ToLower(strings.TrimSpace(raw))
		if addr == "" || seen[addr] || isAssetLike(addr) {
			return
		}
		if _, err := emailaddress.Parse(addr); err != nil {
			return
		}
		seen[addr] = true
		emails = append(emails, addr)
	}

	// Strategy 1: mailto links.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("a[href^='mailto:'], a[href^='Mailto:'], a[href^='MAILTO:']").Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok {
				return
			}
			value := strings.TrimSpace(href)
			if len(value) >= len("mailto:") {
				value = value[len("mailto:"):]
			}
			// Strip query parameters (e.g. ?subject=...).
			if idx := strings.Index(value, "?"); idx >= 0 {
				value = value[:idx]
			}
			add(value)
		})
	}

	// Strategy 2: regex scan over the raw markup. Emails may live in
	// attributes or hidden elements, so the visible text is not enough.
	for _, found := range emailaddress.Find([]byte(html), false) {
		add(found.String())
	}

	return emails
}

// isAssetLike reports whether the address ends in a known file extension.
func isAssetLike(addr string) bool {
	for _, ext := range assetExtensions {
		if strings.HasSuffix(addr, ext) {
			return true
		}
	}
	return false
}
