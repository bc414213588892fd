package pubmeta

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/pubmeta/consent"
)

// ErrNotFound is returned when a requested post or record does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding post metadata and the consent log.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during writes; busy_timeout makes writers wait
	// instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.initSalt(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    date TEXT NOT NULL,
    last_updated TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL,
    featured_image TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL,
    word_count INTEGER NOT NULL DEFAULT 0,
    article_type TEXT NOT NULL DEFAULT '',
    faq TEXT NOT NULL DEFAULT '',
    howto TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS consents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    visitor_id TEXT NOT NULL,
    event TEXT NOT NULL,
    categories TEXT NOT NULL,
    timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_consents_visitor ON consents(visitor_id, id);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

const postColumns = `slug, title, description, date, last_updated, author, featured_image, tags, word_count, article_type, faq, howto, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var (
		p                      Post
		author, tags, faq, how string
		published              int
	)
	err := row.Scan(&p.Slug, &p.Title, &p.Description, &p.Date, &p.LastUpdated, &author,
		&p.FeaturedImage, &tags, &p.WordCount, &p.ArticleType, &faq, &how, &published)
	if err != nil {
		return Post{}, err
	}
	if err := json.Unmarshal([]byte(author), &p.Author); err != nil {
		return Post{}, fmt.Errorf("decode author of %s: %w", p.Slug, err)
	}
	if faq != "" {
		if err := json.Unmarshal([]byte(faq), &p.FAQ); err != nil {
			return Post{}, fmt.Errorf("decode faq of %s: %w", p.Slug, err)
		}
	}
	if how != "" {
		p.HowTo = new(HowTo)
		if err := json.Unmarshal([]byte(how), p.HowTo); err != nil {
			return Post{}, fmt.Errorf("decode howto of %s: %w", p.Slug, err)
		}
	}
	p.Tags = ParseTags(tags)
	p.Published = published == 1
	return p, nil
}

// ListPosts returns all published posts ordered by date descending.
func (s *Store) ListPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// SavePost upserts a post. Tags are trimmed but keep their casing.
func (s *Store) SavePost(p Post) error {
	author, err := json.Marshal(p.Author)
	if err != nil {
		return err
	}
	var faq, how []byte
	if len(p.FAQ) > 0 {
		if faq, err = json.Marshal(p.FAQ); err != nil {
			return err
		}
	}
	if p.HowTo != nil {
		if how, err = json.Marshal(p.HowTo); err != nil {
			return err
		}
	}
	tagString := "," + strings.Join(trimTags(p.Tags), ",") + ","
	published := 0
	if p.Published {
		published = 1
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Description, p.Date, p.LastUpdated, string(author), p.FeaturedImage,
		tagString, p.WordCount, p.ArticleType, string(faq), string(how), published)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ConsentRecord is one logged consent decision.
type ConsentRecord struct {
	VisitorID  string
	Event      string // "consent" or "change"
	Categories []consent.Category
	Timestamp  time.Time
}

// RecordConsent appends a decision to the consent log.
func (s *Store) RecordConsent(r ConsentRecord) error {
	cats := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		cats[i] = string(c)
	}
	_, err := s.db.Exec(`INSERT INTO consents (visitor_id, event, categories, timestamp) VALUES (?, ?, ?, ?)`,
		r.VisitorID, r.Event, strings.Join(cats, ","), r.Timestamp.UTC().Format(time.RFC3339Nano))
	return err
}

// LatestConsent returns the most recent decision logged for a visitor.
func (s *Store) LatestConsent(visitorID string) (ConsentRecord, error) {
	var cats, ts string
	r := ConsentRecord{VisitorID: visitorID}
	err := s.db.QueryRow(`SELECT event, categories, timestamp FROM consents WHERE visitor_id = ? ORDER BY id DESC LIMIT 1`, visitorID).
		Scan(&r.Event, &cats, &ts)
	if err != nil {
		return ConsentRecord{}, err
	}
	for _, c := range SplitList(cats) {
		r.Categories = append(r.Categories, consent.Category(c))
	}
	if r.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return ConsentRecord{}, fmt.Errorf("parse consent timestamp: %w", err)
	}
	return r, nil
}

// initSalt loads or generates the per-installation salt used by HashVisitor.
func (s *Store) initSalt() error {
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'hash_salt'`).Scan(&s.salt)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("read hash salt: %w", err)
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	s.salt = hex.EncodeToString(b)
	if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES ('hash_salt', ?)`, s.salt); err != nil {
		return fmt.Errorf("store hash salt: %w", err)
	}
	return nil
}

// HashVisitor derives an anonymous visitor ID from IP and User-Agent.
func (s *Store) HashVisitor(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(s.salt + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
