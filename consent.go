package pubmeta

import (
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/publicsuffix"

	"github.com/eringen/pubmeta/consent"
)

// consentRequest is what the banner script posts from its onConsent and
// onChange callbacks.
type consentRequest struct {
	Event      string             `json:"event"`
	Categories []consent.Category `json:"categories"`
}

// consentResponse tells the page which consent mode update to apply.
type consentResponse struct {
	Action     string             `json:"action"`
	Categories []consent.Category `json:"categories"`
	Signal     consent.Signal     `json:"signal"`
}

func (a *App) handleConsentConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Consent)
}

func (a *App) handleConsentState(c echo.Context) error {
	ev := ConsentFromSession(c)
	if ev.Categories == nil {
		ev.Categories = []consent.Category{}
	}
	return c.JSON(http.StatusOK, consentResponse{
		Action:     "default",
		Categories: ev.Categories,
		Signal:     consent.SignalFor(ev),
	})
}

func (a *App) handleConsentDecision(c echo.Context) error {
	if !a.consentLimiter.allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}

	var req consentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Event == "" {
		req.Event = "consent"
	}

	ev := consent.Event{Categories: a.acceptedCategories(req.Categories)}

	var signal consent.Signal
	hooks := a.Consent.WithSignal(func(s consent.Signal) { signal = s })
	switch req.Event {
	case "consent":
		hooks.OnConsent(ev)
	case "change":
		hooks.OnChange(ev)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown event")
	}

	if err := saveConsentSession(c, ev); err != nil {
		return err
	}
	record := ConsentRecord{
		VisitorID:  a.Store.HashVisitor(c.RealIP(), c.Request().UserAgent()),
		Event:      req.Event,
		Categories: ev.Categories,
		Timestamp:  time.Now().UTC(),
	}
	if err := a.Store.RecordConsent(record); err != nil {
		c.Logger().Errorf("Failed to record consent: %v", err)
	}
	a.clearRejectedCookies(c, ev)

	return c.JSON(http.StatusOK, consentResponse{
		Action:     "update",
		Categories: ev.Categories,
		Signal:     signal,
	})
}

// acceptedCategories keeps the configured categories the visitor chose, in
// request order without duplicates, and adds every read-only category.
func (a *App) acceptedCategories(requested []consent.Category) []consent.Category {
	seen := make(map[consent.Category]bool)
	out := []consent.Category{}
	add := func(cat consent.Category) {
		if seen[cat] {
			return
		}
		seen[cat] = true
		out = append(out, cat)
	}
	if cfg, ok := a.Consent.Categories[consent.Necessary]; ok && cfg.ReadOnly {
		add(consent.Necessary)
	}
	names := make([]string, 0, len(a.Consent.Categories))
	for cat, cfg := range a.Consent.Categories {
		if cfg.ReadOnly {
			names = append(names, string(cat))
		}
	}
	sort.Strings(names)
	for _, name := range names {
		add(consent.Category(name))
	}
	for _, cat := range requested {
		if _, ok := a.Consent.Categories[cat]; ok {
			add(cat)
		}
	}
	return out
}

// clearRejectedCookies expires the request cookies matching the auto-clear
// rules of every category the visitor did not accept.
func (a *App) clearRejectedCookies(c echo.Context, ev consent.Event) {
	rules := a.Consent.ClearRules(ev)
	if len(rules) == 0 {
		return
	}
	domain := cookieDomain(c.Request().Host)
	for _, ck := range c.Cookies() {
		if !consent.Matches(ck.Name, rules) {
			continue
		}
		c.SetCookie(expiredCookie(ck.Name, ""))
		if domain != "" {
			c.SetCookie(expiredCookie(ck.Name, domain))
		}
	}
}

func expiredCookie(name, domain string) *http.Cookie {
	return &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		Domain:  domain,
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}
}

// cookieDomain returns the registrable domain of host, where analytics
// scripts set their cookies. IP addresses and single-label hosts such as
// localhost have none.
func cookieDomain(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}
