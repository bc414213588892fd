// Package content reads Markdown posts with YAML front matter into post
// metadata records.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/eringen/pubmeta"
	"github.com/eringen/pubmeta/schema"
)

// ErrNoFrontMatter is returned when a document does not start with a
// "---" delimited YAML block.
var ErrNoFrontMatter = errors.New("content: missing front matter")

// Document is a parsed Markdown post.
type Document struct {
	Post pubmeta.Post
	Body string
}

type frontMatter struct {
	Title         string           `yaml:"title"`
	Slug          string           `yaml:"slug"`
	Description   string           `yaml:"description"`
	Date          string           `yaml:"date"`
	LastUpdated   string           `yaml:"last_updated"`
	Author        schema.Author    `yaml:"author"`
	FeaturedImage string           `yaml:"featured_image"`
	Tags          []string         `yaml:"tags"`
	WordCount     int              `yaml:"word_count"`
	ArticleType   string           `yaml:"article_type"`
	Draft         bool             `yaml:"draft"`
	FAQ           []schema.FAQItem `yaml:"faq"`
	HowTo         *pubmeta.HowTo   `yaml:"howto"`
}

// Parse splits front matter from the body and maps it to a post. The slug
// defaults to the slugified title and the word count to CountWords(body).
func Parse(data []byte) (Document, error) {
	return parse(data, "")
}

func parse(data []byte, defaultSlug string) (Document, error) {
	meta, body, err := split(data)
	if err != nil {
		return Document{}, err
	}
	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return Document{}, fmt.Errorf("content: front matter: %w", err)
	}

	slug := fm.Slug
	if slug == "" {
		slug = defaultSlug
	}
	if slug == "" {
		slug = pubmeta.Slugify(fm.Title)
	}
	words := fm.WordCount
	if words == 0 {
		words = CountWords(body)
	}

	return Document{
		Post: pubmeta.Post{
			Post: schema.Post{
				Slug:          slug,
				Title:         fm.Title,
				Description:   fm.Description,
				Date:          fm.Date,
				LastUpdated:   fm.LastUpdated,
				Author:        fm.Author,
				FeaturedImage: fm.FeaturedImage,
				Tags:          fm.Tags,
				WordCount:     words,
				ArticleType:   fm.ArticleType,
			},
			FAQ:       fm.FAQ,
			HowTo:     fm.HowTo,
			Published: !fm.Draft,
		},
		Body: string(body),
	}, nil
}

func split(data []byte) (meta, body []byte, err error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, nil, ErrNoFrontMatter
	}
	rest := data[len("---\n"):]
	// The closing delimiter is a line that is exactly "---".
	for off := 0; off <= len(rest); {
		line := rest[off:]
		next := len(rest)
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			next = off + i + 1
		}
		if string(line) == "---" {
			meta = rest[:off]
			if off > 0 {
				meta = rest[:off-1]
			}
			return meta, rest[next:], nil
		}
		if next == len(rest) {
			break
		}
		off = next
	}
	return nil, nil, ErrNoFrontMatter
}

// ParseFile parses a Markdown file. Without an explicit slug, the file name
// (minus extension) is used.
func ParseFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := parse(data, pubmeta.Slugify(base))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDir parses every *.md file in dir, sorted by file name.
func LoadDir(dir string) ([]Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		doc, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

var (
	markdown = goldmark.New()
	strict   = bluemonday.StrictPolicy()
)

// CountWords renders Markdown to HTML, strips every tag, and counts the
// remaining whitespace-separated words.
func CountWords(md []byte) int {
	var buf bytes.Buffer
	if err := markdown.Convert(md, &buf); err != nil {
		return len(strings.Fields(string(md)))
	}
	return len(strings.Fields(strict.Sanitize(buf.String())))
}
