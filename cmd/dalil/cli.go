package main

import (
	"context"
	"io"
	"time"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/catalog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Store     dalil.CatalogStore
	Engine    dalil.SearchEngine
	Catalog   *catalog.Service
	Responder dalil.Responder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Search     SearchCmd     `cmd:"" help:"Search the service catalog"`
	Scrape     ScrapeCmd     `cmd:"" help:"Scrape a service page and index it"`
	Batch      BatchCmd      `cmd:"" help:"Scrape and index multiple service pages"`
	Ingest     IngestCmd     `cmd:"" help:"Discover and ingest a portal's service pages via its sitemap"`
	List       ListCmd       `cmd:"" help:"List indexed service records"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a service record"`
	ClearCache ClearCacheCmd `cmd:"" name:"clear-cache" help:"Clear cached search and scrape results"`
	Ask        AskCmd        `cmd:"" help:"Ask a question about government services"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query          string `arg:"" help:"Free-text query"`
	Language       string `short:"l" help:"Query language (en or ar); defaults to the configured language"`
	Category       string `short:"c" help:"Restrict results to a category"`
	Max            int    `short:"n" default:"10" help:"Maximum number of results"`
	IncludeExpired bool   `help:"Include expired records"`
	Sort           string `short:"s" default:"relevance" enum:"relevance,date,authority" help:"Sort order"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL     string `arg:"" help:"Service page URL"`
	Dynamic bool   `short:"d" help:"Render the page in a headless browser before extraction"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string      `arg:"" help:"Service page URLs"`
	Concurrency int           `short:"c" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" help:"Per-page timeout"`
	Dynamic     bool          `short:"d" help:"Render pages in a headless browser before extraction"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	URL         string        `arg:"" help:"Portal base URL"`
	Include     []string      `short:"F" name:"filter" help:"Only ingest URLs matching a regex (repeatable)"`
	Exclude     []string      `short:"X" help:"Skip URLs matching a regex (repeatable)"`
	Concurrency int           `short:"c" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" help:"Per-page timeout"`
	Dynamic     bool          `short:"d" help:"Render pages in a headless browser before extraction"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// ClearCacheCmd is the "clear-cache" subcommand.
type ClearCacheCmd struct {
	Prefix string `arg:"" optional:"" help:"Only clear keys with this prefix (e.g. search: or scrape:)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about government services"`
	Language string `short:"l" help:"Answer language (en or ar); detected from the question when omitted"`
}
