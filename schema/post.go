package schema

import (
	"regexp"
	"strings"
)

// Author describes the person credited on a post.
type Author struct {
	Name     string `json:"name" yaml:"name"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin"`
	Avatar   string `json:"avatar,omitempty" yaml:"avatar"`
	Bio      string `json:"bio,omitempty" yaml:"bio"`
	JobTitle string `json:"job_title,omitempty" yaml:"job_title"`
	Company  string `json:"company,omitempty" yaml:"company"`
}

// Post is the input of PostSchema. Slug is unique per site and Date is an
// ISO-8601 date.
type Post struct {
	Slug          string
	Title         string
	Description   string
	Date          string
	LastUpdated   string
	Author        Author
	FeaturedImage string // site-relative path, e.g. "/images/cover.png"
	Tags          []string
	WordCount     int
	ArticleType   string // "BlogPosting" when empty
}

// ModifiedDate returns LastUpdated, or Date when the post was never updated.
func (p Post) ModifiedDate() string {
	if p.LastUpdated != "" {
		return p.LastUpdated
	}
	return p.Date
}

// PostSchemas is the pair of documents embedded on a post page.
type PostSchemas struct {
	Article    Object `json:"article"`
	Breadcrumb Object `json:"breadcrumb"`
}

type postOptions struct {
	publisherName string
	publisherLogo string
}

// PostOption customizes PostSchema.
type PostOption func(*postOptions)

// WithPublisher adds the organization name and logo to the article's
// publisher reference.
func WithPublisher(name, logoURL string) PostOption {
	return func(o *postOptions) {
		o.publisherName = name
		o.publisherLogo = logoURL
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// AuthorID returns the @id of an author's Person node.
func AuthorID(siteURL, name string) string {
	return siteURL + "/authors/" + whitespaceRun.ReplaceAllString(strings.ToLower(name), "-") + "#person"
}

// twitterURL strips the first "@" from the handle.
func twitterURL(handle string) string {
	return "https://twitter.com/" + strings.Replace(handle, "@", "", 1)
}

// PostSchema builds the article and breadcrumb documents for a post.
func PostSchema(post Post, siteURL string, opts ...PostOption) PostSchemas {
	var o postOptions
	for _, opt := range opts {
		opt(&o)
	}

	postURL := PostURL(siteURL, post.Slug)

	articleType := post.ArticleType
	if articleType == "" {
		articleType = "BlogPosting"
	}

	article := Object{
		"@context":      Context,
		"@type":         articleType,
		"@id":           postURL + "#article",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.Date,
		"dateModified":  post.ModifiedDate(),
		"wordCount":     post.WordCount,
		"keywords":      strings.Join(post.Tags, ", "),
		"author":        authorNode(post.Author, siteURL),
		"publisher":     publisherNode(siteURL, o),
		"mainEntityOfPage": Object{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"isPartOf": ref(WebSiteID(siteURL)),
	}
	if post.FeaturedImage != "" {
		article["image"] = siteURL + post.FeaturedImage
	}

	breadcrumb := BreadcrumbList([]Crumb{
		{Name: "Home", Item: siteURL},
		{Name: "Blog", Item: BlogURL(siteURL)},
		{Name: post.Title, Item: postURL},
	})

	return PostSchemas{Article: article, Breadcrumb: breadcrumb}
}

func authorNode(a Author, siteURL string) Object {
	node := Object{
		"@type": "Person",
		"@id":   AuthorID(siteURL, a.Name),
		"name":  a.Name,
	}

	var sameAs []string
	if a.Twitter != "" {
		u := twitterURL(a.Twitter)
		node["url"] = u
		sameAs = append(sameAs, u)
	}
	if a.LinkedIn != "" {
		sameAs = append(sameAs, a.LinkedIn)
	}
	if len(sameAs) > 0 {
		node["sameAs"] = sameAs
	}
	if a.JobTitle != "" {
		node["jobTitle"] = a.JobTitle
	}
	if a.Avatar != "" {
		node["image"] = siteURL + a.Avatar
	}
	if a.Bio != "" {
		node["description"] = a.Bio
	}
	if a.Company != "" {
		node["worksFor"] = Object{
			"@type": "Organization",
			"name":  a.Company,
		}
	}
	return node
}

func publisherNode(siteURL string, o postOptions) Object {
	node := Object{
		"@type": "Organization",
		"@id":   OrganizationID(siteURL),
	}
	if o.publisherName != "" {
		node["name"] = o.publisherName
	}
	if o.publisherLogo != "" {
		node["logo"] = imageObject(o.publisherLogo)
	}
	return node
}
