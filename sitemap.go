package pubmeta

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubmeta/schema"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists the home page, the blog index and every post under the
// same canonical URLs the JSON-LD documents use.
func buildSitemap(siteURL string, posts []Post) urlSet {
	set := urlSet{
		XMLNS: sitemapNS,
		URLs:  make([]sitemapURL, 0, len(posts)+2),
	}
	set.URLs = append(set.URLs,
		sitemapURL{Loc: siteURL},
		sitemapURL{Loc: schema.BlogURL(siteURL)},
	)
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     schema.PostURL(siteURL, p.Slug),
			LastMod: p.ModifiedDate(),
		})
	}
	return set
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return c.XML(http.StatusOK, buildSitemap(a.Config.URL, posts))
}
