package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/procat-admin/internal/app/auth"
	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/config"
	"github.com/light-bringer/procat-admin/internal/services"
)

// Options for a seed run
type Options struct {
	Count   int
	Workers int
	DryRun  bool
}

var sampleNames = []string{
	"Wireless Mouse", "Linen Shirt", "Espresso Beans", "Floor Lamp", "Gift Card",
	"USB-C Charger", "Wool Scarf", "Olive Oil", "Ceramic Vase", "Notebook",
}

func main() {
	// Parse command-line flags
	opts := Options{}
	flag.IntVar(&opts.Count, "count", 20, "Number of products to create")
	flag.IntVar(&opts.Workers, "workers", 4, "Concurrent create calls")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Validate and print the products without creating them")
	flag.Parse()

	if opts.Count <= 0 {
		log.Fatal("Error: -count must be positive")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := services.NewLogger(cfg)
	session := auth.NewTokenSession(cfg.Auth.Token, cfg.Auth.Username, nil, logger)
	if !opts.DryRun && !session.IsAuthenticated() {
		log.Fatalf("Seeding needs a valid API token (%s)", config.EnvAPIToken)
	}
	gateway, client := services.NewGateway(cfg, session, logger)
	defer client.CloseIdleConnections()

	created, err := seed(context.Background(), gateway, opts)
	if err != nil {
		log.Printf("Seeding stopped after %d products: %v", created, err)
		os.Exit(1)
	}

	log.Printf("Seeding completed successfully (%d products)", created)
}

// samplePayload returns the i-th sample product.
func samplePayload(i int) domain.ProductPayload {
	categories := domain.Categories()
	return domain.ProductPayload{
		Name:        fmt.Sprintf("%s %03d", sampleNames[i%len(sampleNames)], i+1),
		Price:       float64(10*(i+1)) + 0.99,
		Quantity:    float64((i * 7) % 100),
		Description: "Sample product",
		Category:    categories[i%len(categories)],
	}
}

func seed(ctx context.Context, gateway contracts.ProductGateway, opts Options) (int, error) {
	payloads := make([]domain.ProductPayload, 0, opts.Count)
	for i := range opts.Count {
		p := samplePayload(i)
		if res := domain.Validate(p); !res.Valid() {
			return 0, fmt.Errorf("sample %d is invalid: %s", i, res.Summary())
		}
		payloads = append(payloads, p)
	}

	if opts.DryRun {
		for _, p := range payloads {
			log.Printf("  would create %q (%s, %g x %g)", p.Name, p.Category, p.Quantity, p.Price)
		}
		return 0, nil
	}

	var created atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for _, p := range payloads {
		g.Go(func() error {
			product, err := gateway.Create(gctx, p)
			if err != nil {
				return fmt.Errorf("failed to create %q: %w", p.Name, err)
			}
			created.Add(1)
			log.Printf("  created #%d %s", product.ID, product.Name)
			return nil
		})
	}

	err := g.Wait()
	return int(created.Load()), err
}
