// Package pubmeta serves the structured data and cookie-consent setup of a
// blog site. It stores post metadata in SQLite and exposes JSON-LD
// documents, the consent banner configuration, and a consent-decision
// endpoint that drives the analytics consent mode.
package pubmeta

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubmeta/consent"
)

// App is the central pubmeta application. It wires together the store,
// cache, consent configuration, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *PostCache
	Consent *consent.Config

	consentLimiter *rateLimiter
	customRoutes   []func(*App)
	initialized    bool
}

// New creates a new pubmeta App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store and registers middleware and routes. Start calls it;
// tests call it directly to drive the Echo instance without listening.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pubmeta: SessionSecret is required")
	}

	if a.Consent == nil {
		a.Consent = consent.Default(nil)
	}
	if dir := a.Config.ConsentLocalesDir; dir != "" {
		extra, err := consent.LoadTranslations(os.DirFS(dir))
		if err != nil {
			return fmt.Errorf("pubmeta: load consent locales: %w", err)
		}
		a.Consent.AddTranslations(extra)
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pubmeta: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.consentLimiter = newRateLimiter(a.Config.ConsentRateLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("pubmeta: serving %s on %s", a.Config.URL, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/consent/config.json", a.handleConsentConfig)
	e.GET("/api/consent", a.handleConsentState)
	e.POST("/api/consent", a.handleConsentDecision)

	e.GET("/schema/site.json", a.handleSiteSchema)
	e.GET("/blog/schema.json", a.handleBlogIndexSchema)
	e.GET("/blog/:slug/schema.json", a.handlePostSchema)
	e.GET("/blog/:slug/jsonld", a.handlePostJSONLD)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/robots.txt", a.handleRobots)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.consentLimiter != nil {
		a.consentLimiter.stop()
		a.consentLimiter = nil
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
