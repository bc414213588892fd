package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/eringen/pubmeta"
	"github.com/eringen/pubmeta/consent"
	"github.com/eringen/pubmeta/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: pubmeta import <dir>")
			os.Exit(1)
		}
		if err := runImport(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "schema":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: pubmeta schema <file.md>")
			os.Exit(1)
		}
		if err := runSchema(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "consent":
		if err := runConsent(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("pubmeta %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg := pubmeta.ConfigFromEnv()
	cfg.SessionSecret = pubmeta.MustEnv("SESSION_SECRET")
	app := pubmeta.New(cfg)
	defer app.Close()
	return app.Start()
}

func runImport(dir string) error {
	docs, err := content.LoadDir(dir)
	if err != nil {
		return err
	}
	cfg := pubmeta.ConfigFromEnv()
	app := pubmeta.New(cfg)
	store, err := pubmeta.NewStore(app.Config.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, doc := range docs {
		if err := store.SavePost(doc.Post); err != nil {
			return fmt.Errorf("save %s: %w", doc.Post.Slug, err)
		}
		state := "published"
		if !doc.Post.Published {
			state = "draft"
		}
		fmt.Printf("  %-40s %s\n", doc.Post.Slug, state)
	}
	fmt.Printf("Imported %d posts into %s\n", len(docs), app.Config.DatabasePath)
	return nil
}

func runSchema(path string) error {
	doc, err := content.ParseFile(path)
	if err != nil {
		return err
	}
	app := pubmeta.New(pubmeta.ConfigFromEnv())
	return printJSON(app.PostDocuments(doc.Post))
}

func runConsent() error {
	cfg := consent.Default(nil)
	if dir := pubmeta.EnvOr("CONSENT_LOCALES_DIR", ""); dir != "" {
		extra, err := consent.LoadTranslations(os.DirFS(dir))
		if err != nil {
			return err
		}
		cfg.AddTranslations(extra)
	}
	return printJSON(cfg)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printUsage() {
	fmt.Println(`pubmeta - Structured data and cookie consent for blogs, built with Go and Echo

Usage:
  pubmeta <command> [arguments]

Commands:
  serve             Start the HTTP server
  import <dir>      Load Markdown posts from dir into the database
  schema <file.md>  Print the JSON-LD documents of a post
  consent           Print the cookie consent configuration
  version           Print the pubmeta version
  help              Show this help message

Environment:
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_LOGO_URL, SITE_SOCIAL_LINKS
  ADDR, DATABASE_PATH, SESSION_SECRET, COOKIE_SECURE, CONSENT_LOCALES_DIR

Examples:
  SESSION_SECRET=change-me pubmeta serve
  pubmeta import content/posts
  SITE_URL=https://example.com pubmeta schema content/posts/hello.md`)
}
