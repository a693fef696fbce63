package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Mirnes420/leadgen"
)

// mapsURL is the search surface the session drives.
const mapsURL = "https://www.google.com/maps"

// Selectors for the map search UI.
const (
	selSearchInput     = "input#searchboxinput"
	selAnyInput        = "input"
	selFeed            = `div[role="feed"]`
	selCard            = `div[role="article"]`
	selCardName        = "div.fontHeadlineSmall"
	selWebsiteLink     = `a[data-item-id="authority"]`
	selConsentOrSearch = `button[aria-label*="Accept"], input#searchboxinput`
)

// Session timing bounds. Timeouts are caught at their call sites and
// converted into skips; only the two startup failures are fatal.
const (
	navTimeout     = 60 * time.Second
	consentTimeout = 10 * time.Second
	feedTimeout    = 20 * time.Second
	detailTimeout  = 2 * time.Second
	lookupTimeout  = 2 * time.Second

	defaultScrollPause = 2 * time.Second
	defaultSettlePause = time.Second

	scrollStep = 1000

	// maxStalePasses bounds the scroll loop: after this many consecutive
	// listing passes without a single unvisited card, the feed is
	// considered exhausted.
	maxStalePasses = 3
)

// Session drives one map-search run through its states: open the surface,
// clear the consent wall, submit the query, then alternate listing and
// scrolling until the target count of verified leads is reached or the
// feed stops yielding new cards.
//
// A Session is used for a single run and is not safe for concurrent use;
// its run state (visited names, collected emails) is owned exclusively by
// the session.
type Session struct {
	Page    leadgen.Page
	Consent leadgen.ConsentDismisser
	Cache   *Deduper
	Finder  leadgen.EmailFinder
	Sink    *Sink
	Logger  *slog.Logger

	// ScrollPause and SettlePause override the render pauses; zero means
	// the default. Tests set these to a negligible duration.
	ScrollPause time.Duration
	SettlePause time.Duration
}

// runState is the session-scoped mutable state: which cards were already
// processed this run and which emails were already collected. It is passed
// explicitly into every per-candidate operation.
type runState struct {
	visited map[string]struct{}
	emails  map[string]struct{}
	leads   []leadgen.Lead
}

func newRunState() *runState {
	return &runState{
		visited: make(map[string]struct{}),
		emails:  make(map[string]struct{}),
	}
}

func (s *runState) seen(name string) bool {
	_, ok := s.visited[name]
	return ok
}

func (s *runState) markVisited(name string) {
	s.visited[name] = struct{}{}
}

func (s *runState) hasEmail(email string) bool {
	_, ok := s.emails[email]
	return ok
}

func (s *runState) addLead(lead leadgen.Lead) {
	s.emails[lead.Email] = struct{}{}
	s.leads = append(s.leads, lead)
}

// Run executes the session and returns at most target verified leads.
// The two fatal failures are an unreachable search surface and a failed
// query submission; everything else degrades to skipping a candidate.
func (s *Session) Run(ctx context.Context, query string, target int) ([]leadgen.Lead, error) {
	state := newRunState()

	// INIT: open the search surface.
	navCtx, cancel := context.WithTimeout(ctx, navTimeout)
	err := s.Page.Navigate(navCtx, mapsURL)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("opening search surface: %w", err)
	}

	// CONSENT_CHECK: wait for either a consent wall or the search input,
	// dismiss the wall if present. Absence of both is not fatal.
	waitCtx, cancel := context.WithTimeout(ctx, consentTimeout)
	if err := s.Page.WaitVisible(waitCtx, selConsentOrSearch); err != nil {
		s.Logger.Info("no consent wall or search box detected, proceeding", "err", err)
	}
	cancel()
	if s.Consent != nil && s.Consent.Dismiss(ctx, s.Page) {
		s.Logger.Info("consent wall dismissed")
	}

	// QUERY_SUBMITTED: no search surface means no candidates.
	if err := s.submitQuery(ctx, query); err != nil {
		return state.leads, err
	}

	// LISTING <-> SCROLLING until done.
	stale := 0
	for len(state.leads) < target && stale < maxStalePasses {
		cards, err := s.Page.Elements(ctx, selCard)
		if err != nil {
			s.Logger.Warn("listing candidate cards failed", "err", err)
			break
		}
		if len(cards) == 0 {
			break
		}

		progressed := false
		for _, card := range cards {
			if len(state.leads) >= target {
				break
			}

			// Candidate boundary: one bad card never aborts the run.
			fresh, err := s.processCard(ctx, card, state)
			if err != nil {
				s.Logger.Warn("candidate processing failed", "err", err)
			}
			if fresh {
				progressed = true
			}
		}

		if len(state.leads) >= target {
			break
		}
		if progressed {
			stale = 0
		} else {
			stale++
		}

		if !s.scrollFeed(ctx) {
			// Feed element missing: probably lost or at the end.
			break
		}
		pause(ctx, s.scrollPause())
	}

	s.Logger.Info("session done", "leads", len(state.leads), "visited", len(state.visited))
	return state.leads, nil
}

// submitQuery fills and submits the search query, then waits for the
// result feed. Failure here is fatal for the run.
func (s *Session) submitQuery(ctx context.Context, query string) error {
	typeCtx, cancel := context.WithTimeout(ctx, consentTimeout)
	defer cancel()

	if err := s.Page.Type(typeCtx, selSearchInput, query); err != nil {
		// The canonical search box id is not always present; fall back to
		// the first input on the page.
		if err := s.Page.Type(typeCtx, selAnyInput, query); err != nil {
			return fmt.Errorf("filling search box: %w", err)
		}
	}

	if err := s.Page.Press(ctx, "Enter"); err != nil {
		return fmt.Errorf("submitting query: %w", err)
	}

	feedCtx, cancel := context.WithTimeout(ctx, feedTimeout)
	defer cancel()
	if err := s.Page.WaitVisible(feedCtx, selFeed); err != nil {
		return fmt.Errorf("waiting for result feed: %w", err)
	}
	return nil
}

// processCard runs the per-candidate pipeline for one visible card. It
// returns true when the card was an unvisited candidate (used by the
// stale-scroll guard). Errors are isolated at this boundary by the caller.
func (s *Session) processCard(ctx context.Context, card leadgen.Element, state *runState) (bool, error) {
	// Extract the name. A card whose name is not ready is skipped without
	// being marked visited, so a later listing pass may retry it.
	name, ok := s.cardName(ctx, card)
	if !ok {
		return false, nil
	}

	if state.seen(name) {
		return false, nil
	}
	state.markVisited(name)

	// Ownership tier: this requester has already been shown the lead.
	if !s.Cache.IsNewForRequester(ctx, name, s.Sink.RequesterID) {
		s.Logger.Info("requester already owns lead, skipping", "name", name)
		return true, nil
	}

	// Global tier: reuse a verified record without any website visit.
	if rec := s.Cache.LookupGlobal(ctx, name); rec != nil && usableEmail(rec.Email) {
		if state.hasEmail(rec.Email) {
			s.Logger.Info("duplicate email within run, skipping", "name", name, "email", rec.Email)
			return true, nil
		}

		lead := leadgen.Lead{Name: name, Website: orUnresolved(rec.Website), Email: rec.Email}
		if err := s.Sink.Record(ctx, &lead, SourceCacheHit, rec.ID); err != nil {
			return true, err
		}
		state.addLead(lead)
		s.Logger.Info("cache hit, reusing global record", "name", name)
		return true, nil
	}

	// The hard way: open the card detail and scrape the website.
	if err := card.Click(ctx); err != nil {
		return true, fmt.Errorf("opening card detail for %q: %w", name, err)
	}

	detailCtx, cancel := context.WithTimeout(ctx, detailTimeout)
	err := s.Page.WaitVisible(detailCtx, selWebsiteLink)
	cancel()
	if err != nil {
		s.Logger.Info("no website listed", "name", name)
		return true, nil
	}
	pause(ctx, s.settlePause())

	website := s.websiteURL(ctx)

	email, err := s.Finder.Find(ctx, website)
	if err != nil {
		s.Logger.Warn("website scrape failed", "name", name, "website", website, "err", err)
		return true, nil
	}
	if !usableEmail(email) {
		s.Logger.Info("no email found", "name", name, "website", website)
		return true, nil
	}
	if state.hasEmail(email) {
		s.Logger.Info("duplicate email within run, skipping", "name", name, "email", email)
		return true, nil
	}

	lead := leadgen.Lead{Name: name, Website: orUnresolved(website), Email: email}
	if err := s.Sink.Record(ctx, &lead, SourceFreshScrape, ""); err != nil {
		return true, err
	}
	state.addLead(lead)
	s.Logger.Info("new lead", "name", name, "email", email, "count", len(state.leads))
	return true, nil
}

// cardName extracts the candidate name from a card. Returns false when the
// name element is absent, hidden or empty.
func (s *Session) cardName(ctx context.Context, card leadgen.Element) (string, bool) {
	nameCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	el, err := card.Element(nameCtx, selCardName)
	if err != nil {
		return "", false
	}
	if visible, err := el.Visible(nameCtx); err != nil || !visible {
		return "", false
	}
	text, err := el.Text(nameCtx)
	if err != nil {
		return "", false
	}
	name := strings.TrimSpace(text)
	return name, name != ""
}

// websiteURL reads the listed website URL from the open card detail, or ""
// when none is listed.
func (s *Session) websiteURL(ctx context.Context) string {
	linkCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	el, err := s.Page.Element(linkCtx, selWebsiteLink)
	if err != nil {
		return ""
	}
	href, err := el.Attribute(linkCtx, "href")
	if err != nil {
		return ""
	}
	return href
}

// scrollFeed scrolls the result feed to reveal more cards. Returns false
// when the feed element is gone.
func (s *Session) scrollFeed(ctx context.Context) bool {
	feedCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	feed, err := s.Page.Element(feedCtx, selFeed)
	if err != nil {
		return false
	}
	if err := feed.Scroll(ctx, scrollStep); err != nil {
		s.Logger.Warn("scrolling feed failed", "err", err)
		return false
	}
	return true
}

func (s *Session) scrollPause() time.Duration {
	if s.ScrollPause != 0 {
		return s.ScrollPause
	}
	return defaultScrollPause
}

func (s *Session) settlePause() time.Duration {
	if s.SettlePause != 0 {
		return s.SettlePause
	}
	return defaultSettlePause
}

// usableEmail reports whether the value is a usable address rather than
// empty or the Unresolved sentinel.
func usableEmail(email string) bool {
	return email != "" && email != leadgen.Unresolved
}

// orUnresolved maps the internal "absent" representation to the sentinel
// surfaced in Lead rows.
func orUnresolved(value string) string {
	if value == "" {
		return leadgen.Unresolved
	}
	return value
}

// pause sleeps for d unless the context ends first. Non-positive durations
// return immediately.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
