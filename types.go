package pubmeta

import "github.com/eringen/pubmeta/schema"

// Post is the stored metadata of one blog post: the fields the article
// schema needs plus the optional FAQ and HowTo blocks shown on the page.
type Post struct {
	schema.Post
	FAQ       []schema.FAQItem
	HowTo     *HowTo
	Published bool
}

// HowTo is a step-by-step guide attached to a post.
type HowTo struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Steps       []schema.HowToStep `json:"steps" yaml:"steps"`
	TotalTime   string             `json:"total_time,omitempty" yaml:"total_time"` // ISO-8601 duration
}

// Summary returns the blog index entry for the post.
func (p Post) Summary() schema.PostSummary {
	return schema.PostSummary{
		ID:          p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
	}
}
