package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePost = `---
title: Validating a Startup Idea
description: A step-by-step guide to customer discovery
date: 2024-01-15
last_updated: 2024-02-01
author:
  name: Jane Doe
  twitter: "@jane"
  job_title: Founder
featured_image: /images/validate.png
tags: [Startups, Research]
article_type: TechArticle
faq:
  - question: How long does it take?
    answer: About two weeks.
  - question: Do I need funding?
    answer: No.
howto:
  name: Validate an idea
  description: Customer discovery in three steps
  total_time: PT2H
  steps:
    - name: Find people
      text: List ten potential customers.
    - name: Talk
      text: Interview them.
---
# Why validate

Most ideas **fail** because nobody wants them.

- talk
- listen
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(samplePost))
	require.NoError(t, err)

	p := doc.Post
	assert.Equal(t, "validating-a-startup-idea", p.Slug)
	assert.Equal(t, "Validating a Startup Idea", p.Title)
	assert.Equal(t, "2024-01-15", p.Date)
	assert.Equal(t, "2024-02-01", p.LastUpdated)
	assert.Equal(t, "Jane Doe", p.Author.Name)
	assert.Equal(t, "@jane", p.Author.Twitter)
	assert.Equal(t, "Founder", p.Author.JobTitle)
	assert.Equal(t, "/images/validate.png", p.FeaturedImage)
	assert.Equal(t, []string{"Startups", "Research"}, p.Tags)
	assert.Equal(t, "TechArticle", p.ArticleType)
	assert.True(t, p.Published)

	require.Len(t, p.FAQ, 2)
	assert.Equal(t, "Do I need funding?", p.FAQ[1].Question)

	require.NotNil(t, p.HowTo)
	assert.Equal(t, "PT2H", p.HowTo.TotalTime)
	require.Len(t, p.HowTo.Steps, 2)
	assert.Equal(t, "Talk", p.HowTo.Steps[1].Name)

	// "Why validate" + "Most ideas fail because nobody wants them." + "talk listen"
	assert.Equal(t, 11, p.WordCount)
	assert.Contains(t, doc.Body, "# Why validate")
}

func TestParseExplicitFields(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Hello\nslug: custom\nword_count: 1234\ndraft: true\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "custom", doc.Post.Slug)
	assert.Equal(t, 1234, doc.Post.WordCount)
	assert.False(t, doc.Post.Published)
	assert.Nil(t, doc.Post.HowTo)
	assert.Empty(t, doc.Post.FAQ)
}

func TestParseCRLF(t *testing.T) {
	doc, err := Parse([]byte("---\r\ntitle: Windows\r\n---\r\nOne two\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "windows", doc.Post.Slug)
	assert.Equal(t, 2, doc.Post.WordCount)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("# no front matter"))
	assert.ErrorIs(t, err, ErrNoFrontMatter)

	_, err = Parse([]byte("---\ntitle: unterminated\n"))
	assert.ErrorIs(t, err, ErrNoFrontMatter)

	_, err = Parse([]byte("---\ntags: [\n---\n"))
	assert.Error(t, err)
}

func TestParseClosingDelimiterIsExact(t *testing.T) {
	for _, input := range []string{
		"---\ntitle: Dashes\n----\nbody\n",
		"---\ntitle: Dashes\n---more\nbody\n",
	} {
		_, err := Parse([]byte(input))
		assert.ErrorIs(t, err, ErrNoFrontMatter, input)
	}

	doc, err := Parse([]byte("---\ntitle: Rule\n---\none\n\n---\n\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, "Rule", doc.Post.Title)
	assert.Equal(t, "one\n\n---\n\ntwo\n", doc.Body)
	assert.Equal(t, 2, doc.Post.WordCount)
}

func TestParseClosingDelimiterAtEOF(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Bare\n---"))
	require.NoError(t, err)
	assert.Equal(t, "Bare", doc.Post.Title)
	assert.Empty(t, doc.Body)
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"one", 1},
		{"**bold** and _italic_", 3},
		{"[a link](https://example.com) here", 3},
		{"<div>raw html</div>", 0},
		{"```\nfmt.Println(x)\n```", 1},
	}
	for _, tt := range tests {
		if got := CountWords([]byte(tt.input)); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestLoadDirUsesFileNameSlug(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	write("b-second.md", "---\ntitle: Second\n---\nx\n")
	write("a-first.md", "---\ntitle: First\nslug: first-post\n---\nx\n")
	write("notes.txt", "ignored")

	docs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first-post", docs[0].Post.Slug)
	assert.Equal(t, "b-second", docs[1].Post.Slug)
}

func TestLoadDirReportsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("no front matter"), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.md")
}
