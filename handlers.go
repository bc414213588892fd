package pubmeta

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubmeta/schema"
)

// PostDocuments are the JSON-LD documents embedded on a post page.
type PostDocuments struct {
	Article    schema.Object `json:"article"`
	Breadcrumb schema.Object `json:"breadcrumb"`
	FAQ        schema.Object `json:"faq,omitempty"`
	HowTo      schema.Object `json:"howto,omitempty"`
}

// PostDocuments builds the JSON-LD documents for p using the site's
// organization as publisher.
func (a *App) PostDocuments(p Post) PostDocuments {
	cfg := a.Config
	pair := schema.PostSchema(p.Post, cfg.URL, schema.WithPublisher(cfg.Name, cfg.LogoURL))
	docs := PostDocuments{
		Article:    pair.Article,
		Breadcrumb: pair.Breadcrumb,
	}
	if len(p.FAQ) > 0 {
		docs.FAQ = schema.FAQSchema(p.FAQ)
	}
	if h := p.HowTo; h != nil {
		docs.HowTo = schema.HowToSchema(h.Name, h.Description, h.Steps, h.TotalTime)
	}
	return docs
}

// SiteDocuments are the site-wide JSON-LD documents.
type SiteDocuments struct {
	Organization schema.Object `json:"organization"`
	WebSite      schema.Object `json:"website"`
}

// SiteDocuments builds the Organization and WebSite documents. They share
// the organization @id, so pages should embed both.
func (a *App) SiteDocuments() SiteDocuments {
	cfg := a.Config
	return SiteDocuments{
		Organization: schema.OrganizationSchema(cfg.Name, cfg.URL, cfg.LogoURL, cfg.SocialLinks),
		WebSite:      schema.WebSiteSchema(cfg.Name, cfg.URL, cfg.Description),
	}
}

func (a *App) handleSiteSchema(c echo.Context) error {
	return c.JSON(http.StatusOK, a.SiteDocuments())
}

func (a *App) handleBlogIndexSchema(c echo.Context) error {
	items, err := a.Cache.Summaries()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schema.BlogIndexSchema(a.Config.URL, items))
}

func (a *App) lookupPost(c echo.Context) (Post, error) {
	post, err := a.Cache.GetPost(c.Param("slug"))
	if err == ErrNotFound {
		return Post{}, echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return post, err
}

func (a *App) handlePostSchema(c echo.Context) error {
	post, err := a.lookupPost(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a.PostDocuments(post))
}

// handlePostJSONLD returns the script elements for a post page, ready to be
// included in the page head.
func (a *App) handlePostJSONLD(c echo.Context) error {
	post, err := a.lookupPost(c)
	if err != nil {
		return err
	}
	docs := a.PostDocuments(post)
	return Render(c, schema.Script(docs.Article, docs.Breadcrumb, docs.FAQ, docs.HowTo))
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}
