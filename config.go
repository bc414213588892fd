package pubmeta

import (
	"strings"
	"time"

	"github.com/eringen/pubmeta/consent"
)

// SiteConfig holds all configuration for a pubmeta site.
type SiteConfig struct {
	Name        string   // Site and organization name (default "Blog")
	URL         string   // Canonical URL without trailing slash (default "http://localhost:3000")
	Description string   // WebSite description
	LogoURL     string   // Organization logo (default URL + "/logo.png")
	SocialLinks []string // Organization sameAs profiles

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/pubmeta.db")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	ConsentLocalesDir string // Extra banner translations, one YAML file per language
	ConsentRateLimit  int    // Consent decisions per IP per minute (default 60)

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.LogoURL == "" {
		c.LogoURL = c.URL + "/logo.png"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pubmeta.db"
	}
	if c.ConsentRateLimit == 0 {
		c.ConsentRateLimit = 60
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// ConfigFromEnv builds a SiteConfig from SITE_* and server environment
// variables. Unset values fall back to the defaults applied by New.
func ConfigFromEnv() SiteConfig {
	return SiteConfig{
		Name:              EnvOr("SITE_NAME", ""),
		URL:               EnvOr("SITE_URL", ""),
		Description:       EnvOr("SITE_DESCRIPTION", ""),
		LogoURL:           EnvOr("SITE_LOGO_URL", ""),
		SocialLinks:       SplitList(EnvOr("SITE_SOCIAL_LINKS", "")),
		Addr:              EnvOr("ADDR", ""),
		DatabasePath:      EnvOr("DATABASE_PATH", ""),
		SessionSecret:     EnvOr("SESSION_SECRET", ""),
		CookieSecure:      EnvOr("COOKIE_SECURE", "") == "true",
		ConsentLocalesDir: EnvOr("CONSENT_LOCALES_DIR", ""),
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithConsent replaces the default consent banner configuration. Its
// categories and texts are served as given. Its Signal is not called by
// POST /api/consent: that endpoint captures the consent mode update for the
// request and returns it to the page, which forwards it to the analytics tag.
func WithConsent(cfg *consent.Config) Option {
	return func(a *App) {
		a.Consent = cfg
	}
}
