package leadgen

import "context"

// EmailExtractor scans an HTML document for well-formed email addresses.
type EmailExtractor interface {
	// Extract returns the deduplicated set of addresses found anywhere in
	// the markup, including mailto: attributes and hidden elements.
	// Asset-like matches (strings ending in image or document extensions)
	// are discarded. Order is not significant. Extract never fails; an
	// unparseable document yields an empty result.
	Extract(html string) []string
}

// EmailFinder mines a contact email from a business website.
type EmailFinder interface {
	// Find loads the website and returns the first usable email address,
	// following contact/legal/imprint links if the homepage yields
	// nothing. It returns Unresolved (with a nil error) when the site
	// exposes no address, and Unresolved with a non-nil error when
	// navigation or extraction failed. An empty or Unresolved website is
	// answered immediately without navigating.
	Find(ctx context.Context, website string) (string, error)
}
