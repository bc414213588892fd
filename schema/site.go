package schema

// OrganizationSchema builds the site's Organization node. Other documents
// reference it through OrganizationID(siteURL).
func OrganizationSchema(name, siteURL, logoURL string, sameAs []string) Object {
	m := Object{
		"@context": Context,
		"@type":    "Organization",
		"@id":      OrganizationID(siteURL),
		"name":     name,
		"url":      siteURL,
		"logo":     imageObject(logoURL),
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSiteSchema builds the WebSite node. Its publisher is a bare reference,
// so the page must also embed OrganizationSchema for the same siteURL.
func WebSiteSchema(name, siteURL, description string) Object {
	return Object{
		"@context":    Context,
		"@type":       "WebSite",
		"@id":         WebSiteID(siteURL),
		"name":        name,
		"url":         siteURL,
		"description": description,
		"publisher":   ref(OrganizationID(siteURL)),
	}
}

// PostSummary is one entry of the blog index.
type PostSummary struct {
	ID          string // post slug
	Title       string
	Description string
	Date        string
}

// BlogIndexSchemas is the pair of documents embedded on the blog index.
type BlogIndexSchemas struct {
	CollectionPage Object `json:"collectionPage"`
	Breadcrumb     Object `json:"breadcrumb"`
}

// maxIndexItems caps the ItemList on the blog index.
const maxIndexItems = 10

// BlogIndexSchema builds the CollectionPage and breadcrumb for the blog
// index. Only the first 10 posts are listed, in the order given.
func BlogIndexSchema(siteURL string, posts []PostSummary) BlogIndexSchemas {
	if len(posts) > maxIndexItems {
		posts = posts[:maxIndexItems]
	}
	items := make([]Object, 0, len(posts))
	for i, p := range posts {
		items = append(items, Object{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      PostURL(siteURL, p.ID),
			"name":     p.Title,
		})
	}

	blogURL := BlogURL(siteURL)
	page := Object{
		"@context":    Context,
		"@type":       "CollectionPage",
		"@id":         blogURL + "#webpage",
		"name":        "Blog",
		"description": "Articles, guides, and insights",
		"url":         blogURL,
		"isPartOf":    ref(WebSiteID(siteURL)),
		"mainEntity": Object{
			"@type":           "ItemList",
			"itemListElement": items,
		},
	}

	breadcrumb := BreadcrumbList([]Crumb{
		{Name: "Home", Item: siteURL},
		{Name: "Blog", Item: blogURL},
	})

	return BlogIndexSchemas{CollectionPage: page, Breadcrumb: breadcrumb}
}
