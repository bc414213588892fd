package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalPost() Post {
	return Post{
		Slug:        "foo",
		Title:       "T",
		Description: "D",
		Date:        "2024-01-01",
		Author:      Author{Name: "Jane Doe"},
		Tags:        []string{"a"},
		WordCount:   100,
	}
}

func TestPostSchemaMinimal(t *testing.T) {
	got := PostSchema(minimalPost(), "https://ex.com")
	article := got.Article

	assert.Equal(t, Context, article["@context"])
	assert.Equal(t, "BlogPosting", article["@type"])
	assert.Equal(t, "https://ex.com/blog/foo#article", article["@id"])
	assert.Equal(t, "2024-01-01", article["datePublished"])
	assert.Equal(t, "2024-01-01", article["dateModified"])
	assert.Equal(t, 100, article["wordCount"])
	assert.Equal(t, "a", article["keywords"])
	assert.NotContains(t, article, "image")

	author, ok := article["author"].(Object)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", author["name"])
	assert.Equal(t, "https://ex.com/authors/jane-doe#person", author["@id"])
	for _, key := range []string{"sameAs", "url", "jobTitle", "image", "description", "worksFor"} {
		assert.NotContains(t, author, key)
	}

	publisher, ok := article["publisher"].(Object)
	require.True(t, ok)
	assert.Equal(t, "https://ex.com#organization", publisher["@id"])
	assert.NotContains(t, publisher, "name")

	assert.Equal(t, Object{"@type": "WebPage", "@id": "https://ex.com/blog/foo"}, article["mainEntityOfPage"])
	assert.Equal(t, Object{"@id": "https://ex.com#website"}, article["isPartOf"])
}

func TestPostSchemaOptionalFields(t *testing.T) {
	post := minimalPost()
	post.LastUpdated = "2024-02-01"
	post.ArticleType = "TechArticle"
	post.FeaturedImage = "/img/cover.png"
	post.Tags = []string{"go", "seo"}
	post.Author = Author{
		Name:     "Jane  Q Doe",
		Twitter:  "@jane",
		LinkedIn: "https://linkedin.com/in/jane",
		Avatar:   "/img/jane.png",
		Bio:      "Writes things.",
		JobTitle: "Editor",
		Company:  "Acme",
	}

	article := PostSchema(post, "https://ex.com", WithPublisher("Acme", "https://ex.com/logo.png")).Article

	assert.Equal(t, "TechArticle", article["@type"])
	assert.Equal(t, "2024-02-01", article["dateModified"])
	assert.Equal(t, "https://ex.com/img/cover.png", article["image"])
	assert.Equal(t, "go, seo", article["keywords"])

	author := article["author"].(Object)
	assert.Equal(t, "https://ex.com/authors/jane-q-doe#person", author["@id"])
	assert.Equal(t, "https://twitter.com/jane", author["url"])
	assert.Equal(t, []string{"https://twitter.com/jane", "https://linkedin.com/in/jane"}, author["sameAs"])
	assert.Equal(t, "Editor", author["jobTitle"])
	assert.Equal(t, "https://ex.com/img/jane.png", author["image"])
	assert.Equal(t, "Writes things.", author["description"])
	assert.Equal(t, Object{"@type": "Organization", "name": "Acme"}, author["worksFor"])

	publisher := article["publisher"].(Object)
	assert.Equal(t, "Acme", publisher["name"])
	assert.Equal(t, Object{"@type": "ImageObject", "url": "https://ex.com/logo.png"}, publisher["logo"])
}

func TestPostSchemaLinkedInOnly(t *testing.T) {
	post := minimalPost()
	post.Author.LinkedIn = "https://linkedin.com/in/jd"

	author := PostSchema(post, "https://ex.com").Article["author"].(Object)
	assert.Equal(t, []string{"https://linkedin.com/in/jd"}, author["sameAs"])
	assert.NotContains(t, author, "url")
}

func TestPostSchemaBreadcrumb(t *testing.T) {
	crumbs := PostSchema(minimalPost(), "https://ex.com").Breadcrumb
	assert.Equal(t, "BreadcrumbList", crumbs["@type"])

	items := crumbs["itemListElement"].([]Object)
	require.Len(t, items, 3)
	want := []Crumb{
		{"Home", "https://ex.com"},
		{"Blog", "https://ex.com/blog"},
		{"T", "https://ex.com/blog/foo"},
	}
	for i, c := range want {
		assert.Equal(t, i+1, items[i]["position"])
		assert.Equal(t, c.Name, items[i]["name"])
		assert.Equal(t, c.Item, items[i]["item"])
	}
}

func TestPostSchemaJSONOmitsAbsentFields(t *testing.T) {
	out := JSON(PostSchema(minimalPost(), "https://ex.com").Article)
	assert.NotContains(t, out, "null")
	assert.NotContains(t, out, `"image"`)
	assert.NotContains(t, out, `"sameAs"`)
}

func TestFAQSchemaKeepsOrder(t *testing.T) {
	got := FAQSchema([]FAQItem{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
		{Question: "Q1", Answer: "A1"},
	})

	assert.Equal(t, "FAQPage", got["@type"])
	entities := got["mainEntity"].([]Object)
	require.Len(t, entities, 3)
	for i, q := range []string{"Q1", "Q2", "Q1"} {
		assert.Equal(t, "Question", entities[i]["@type"])
		assert.Equal(t, q, entities[i]["name"])
		answer := entities[i]["acceptedAnswer"].(Object)
		assert.Equal(t, "Answer", answer["@type"])
		assert.Equal(t, "A"+q[1:], answer["text"])
	}
}

func TestFAQSchemaEmpty(t *testing.T) {
	got := FAQSchema(nil)
	assert.Equal(t, `{"@context":"https://schema.org","@type":"FAQPage","mainEntity":[]}`, JSON(got))
}

func TestHowToSchema(t *testing.T) {
	got := HowToSchema("Brew", "Make coffee", []HowToStep{
		{Name: "Grind", Text: "Grind beans"},
		{Name: "Pour", Text: "Pour water", Image: "https://ex.com/pour.png"},
	}, "PT5M")

	assert.Equal(t, "HowTo", got["@type"])
	assert.Equal(t, "PT5M", got["totalTime"])
	steps := got["step"].([]Object)
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0]["position"])
	assert.Equal(t, 2, steps[1]["position"])
	assert.NotContains(t, steps[0], "image")
	assert.Equal(t, "https://ex.com/pour.png", steps[1]["image"])
}

func TestHowToSchemaWithoutDuration(t *testing.T) {
	got := HowToSchema("Brew", "Make coffee", nil, "")
	assert.NotContains(t, got, "totalTime")
	assert.Empty(t, got["step"])
}

func TestOrganizationAndWebSiteShareID(t *testing.T) {
	org := OrganizationSchema("Acme", "https://acme.com", "https://acme.com/logo.png", nil)
	site := WebSiteSchema("Acme", "https://acme.com", "Widgets")

	assert.Equal(t, "https://acme.com#organization", org["@id"])
	assert.NotContains(t, org, "sameAs")
	assert.Equal(t, Object{"@type": "ImageObject", "url": "https://acme.com/logo.png"}, org["logo"])

	assert.Equal(t, "https://acme.com#website", site["@id"])
	assert.Equal(t, Object{"@id": org["@id"]}, site["publisher"])
}

func TestOrganizationSameAs(t *testing.T) {
	links := []string{"https://twitter.com/acme", "https://linkedin.com/company/acme"}
	org := OrganizationSchema("Acme", "https://acme.com", "https://acme.com/logo.png", links)
	assert.Equal(t, links, org["sameAs"])
}

func TestBlogIndexSchemaTruncates(t *testing.T) {
	posts := make([]PostSummary, 15)
	for i := range posts {
		posts[i] = PostSummary{
			ID:    fmt.Sprintf("post-%d", i),
			Title: fmt.Sprintf("Post %d", i),
			Date:  fmt.Sprintf("2024-01-%02d", 15-i),
		}
	}

	got := BlogIndexSchema("https://ex.com", posts)
	page := got.CollectionPage
	assert.Equal(t, "CollectionPage", page["@type"])
	assert.Equal(t, "https://ex.com/blog#webpage", page["@id"])
	assert.Equal(t, "https://ex.com/blog", page["url"])

	items := page["mainEntity"].(Object)["itemListElement"].([]Object)
	require.Len(t, items, 10)
	for i, it := range items {
		assert.Equal(t, i+1, it["position"])
		assert.Equal(t, fmt.Sprintf("https://ex.com/blog/post-%d", i), it["url"])
		assert.Equal(t, fmt.Sprintf("Post %d", i), it["name"])
	}

	crumbs := got.Breadcrumb["itemListElement"].([]Object)
	assert.Len(t, crumbs, 2)
	assert.Len(t, posts, 15, "input slice must not be modified")
}

func TestBlogIndexSchemaFewPosts(t *testing.T) {
	got := BlogIndexSchema("https://ex.com", []PostSummary{{ID: "a", Title: "A"}})
	items := got.CollectionPage["mainEntity"].(Object)["itemListElement"].([]Object)
	assert.Len(t, items, 1)
}

func TestScriptRendersEachObject(t *testing.T) {
	var buf bytes.Buffer
	err := Script(
		FAQSchema([]FAQItem{{Question: "</script><b>", Answer: "x & y"}}),
		nil,
		WebSiteSchema("Acme", "https://acme.com", "Widgets"),
	).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `<script type="application/ld+json">`))
	assert.Equal(t, 2, strings.Count(out, "</script>"))

	first := strings.TrimPrefix(strings.SplitN(out, "</script>", 2)[0], `<script type="application/ld+json">`)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(first), &decoded))
	assert.Equal(t, "FAQPage", decoded["@type"])
}
