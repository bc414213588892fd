package pubmeta

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/pubmeta/consent"
)

const (
	sessionName   = "consent_session"
	categoriesKey = "categories"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		HSTSMaxAge:         31536000,
	}))

	e.Use(middleware.BodyLimit("16K"))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/api/"):
			c.Response().Header().Set("Cache-Control", "no-store")
		case path == "/sitemap.xml" || path == "/robots.txt" || path == "/consent/config.json" || path == "/schema/site.json":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 182,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// ConsentFromSession returns the categories the visitor accepted, as stored
// by the consent endpoint. Visitors without a decision accept nothing.
func ConsentFromSession(c echo.Context) consent.Event {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return consent.Event{}
	}
	raw, _ := sess.Values[categoriesKey].(string)
	var ev consent.Event
	for _, name := range SplitList(raw) {
		ev.Categories = append(ev.Categories, consent.Category(name))
	}
	return ev
}

// saveConsentSession stores the accepted categories. A cookie that no longer
// decodes (rotated secret, tampering) is overwritten with a fresh session.
func saveConsentSession(c echo.Context, ev consent.Event) error {
	sess, err := session.Get(sessionName, c)
	if sess == nil {
		return err
	}
	if err != nil {
		c.Logger().Warnf("replacing undecodable consent session: %v", err)
	}
	names := make([]string, len(ev.Categories))
	for i, cat := range ev.Categories {
		names[i] = string(cat)
	}
	sess.Values[categoriesKey] = strings.Join(names, ",")
	return sess.Save(c.Request(), c.Response())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		msg = http.StatusText(code)
	}
	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, map[string]string{"error": msg})
	}
	if werr != nil {
		c.Logger().Errorf("write error response: %v", werr)
	}
}
