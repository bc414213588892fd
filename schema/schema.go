// Package schema builds schema.org JSON-LD documents for blog pages.
//
// Every builder is a plain field mapping: inputs are trusted, nothing is
// validated, and optional fields are only set when the source value is present.
package schema

import (
	"encoding/json"
)

// Context is the @context value of every top-level document.
const Context = "https://schema.org"

// Object is a JSON-LD node.
type Object map[string]any

// JSON marshals v to a compact JSON string. It returns "{}" on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// OrganizationID returns the @id every page uses to reference the site's
// Organization node.
func OrganizationID(siteURL string) string {
	return siteURL + "#organization"
}

// WebSiteID returns the @id of the site's WebSite node.
func WebSiteID(siteURL string) string {
	return siteURL + "#website"
}

// BlogURL returns the blog index URL.
func BlogURL(siteURL string) string {
	return siteURL + "/blog"
}

// PostURL returns the canonical URL of a post.
func PostURL(siteURL, slug string) string {
	return siteURL + "/blog/" + slug
}

// Crumb is one breadcrumb entry: a display name and an absolute URL.
type Crumb struct {
	Name string
	Item string
}

// BreadcrumbList builds a BreadcrumbList with 1-based positions.
func BreadcrumbList(items []Crumb) Object {
	el := make([]Object, 0, len(items))
	for i, it := range items {
		el = append(el, Object{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return Object{
		"@context":        Context,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

func ref(id string) Object {
	return Object{"@id": id}
}

func imageObject(url string) Object {
	return Object{
		"@type": "ImageObject",
		"url":   url,
	}
}
