package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/light-bringer/procat-admin/internal/app/auth"
	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/config"
	"github.com/light-bringer/procat-admin/internal/services"
)

// Options for one listing
type Options struct {
	Search   string
	Page     int
	PageSize int
}

func main() {
	// Parse command-line flags
	opts := Options{}
	flag.StringVar(&opts.Search, "search", "", "Filter by name or category (case-insensitive substring)")
	flag.IntVar(&opts.Page, "page", 1, "Page to print")
	flag.IntVar(&opts.PageSize, "page-size", 0, "Rows per page (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if opts.PageSize > 0 {
		cfg.UI.PageSize = opts.PageSize
	}

	if err := run(context.Background(), cfg, opts, os.Stdout); err != nil {
		log.Fatalf("Listing failed: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, opts Options, out io.Writer) error {
	logger := services.NewLogger(cfg)
	session := auth.NewTokenSession(cfg.Auth.Token, cfg.Auth.Username, nil, logger)
	gateway, client := services.NewGateway(cfg, session, logger)
	defer client.CloseIdleConnections()

	store := catalog.NewStore(gateway, cfg.UI.PageSize, logger)
	if err := store.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	store.SetSearchTerm(opts.Search)
	if opts.Page != 1 && !store.SetPage(opts.Page) {
		log.Printf("Page %d is out of range, showing page 1", opts.Page)
	}

	return printView(out, store.View())
}

func printView(out io.Writer, v catalog.View) error {
	if len(v.Items) == 0 {
		if v.SearchTerm != "" {
			_, err := fmt.Fprintln(out, "No products match your search")
			return err
		}
		_, err := fmt.Fprintln(out, "No products yet")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQUANTITY\tCATEGORY")
	for _, p := range v.Items {
		fmt.Fprintf(w, "%d\t%s\t%g\t%d\t%s\n", p.ID, p.Name, p.Price, p.Quantity, p.Category)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "page %d of %d (%d products)\n", v.Page, v.TotalPages, v.TotalItems)
	return err
}
