package pubmeta

import (
	"sync"
	"time"

	"github.com/eringen/pubmeta/schema"
)

// PostCache keeps the published posts in memory for the schema endpoints.
// Entries expire after the TTL or on Invalidate.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	bySlug  map[string]int
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) fresh() bool {
	return c.bySlug != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate drops the cached posts; the next read reloads them.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts, c.bySlug = nil, nil
	c.mu.Unlock()
}

// snapshot returns the cached posts and slug index, reloading from the
// store under the write lock when they are stale.
func (c *PostCache) snapshot() ([]Post, map[string]int, error) {
	c.mu.RLock()
	if c.fresh() {
		posts, idx := c.posts, c.bySlug
		c.mu.RUnlock()
		return posts, idx, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fresh() {
		return c.posts, c.bySlug, nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return nil, nil, err
	}
	idx := make(map[string]int, len(posts))
	for i, p := range posts {
		idx[p.Slug] = i
	}
	c.posts, c.bySlug = posts, idx
	c.fetched = time.Now()
	return posts, idx, nil
}

// ListPosts returns published posts, newest first.
func (c *PostCache) ListPosts() ([]Post, error) {
	posts, _, err := c.snapshot()
	return posts, err
}

// Summaries returns the blog index entries of the published posts, newest
// first.
func (c *PostCache) Summaries() ([]schema.PostSummary, error) {
	posts, _, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]schema.PostSummary, len(posts))
	for i, p := range posts {
		out[i] = p.Summary()
	}
	return out, nil
}

// GetPost returns a published post by slug, or ErrNotFound.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, idx, err := c.snapshot()
	if err != nil {
		return Post{}, err
	}
	i, ok := idx[slug]
	if !ok {
		return Post{}, ErrNotFound
	}
	return posts[i], nil
}
