// Command seed-db loads the embedded product catalog into PostgreSQL and
// registers an admin API key.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dukicks/storefront/db"
	"github.com/dukicks/storefront/internal/domain/catalog"
	"github.com/dukicks/storefront/internal/repository"
)

type productJSON struct {
	ID          string          `json:"id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Discount    int             `json:"discount"`
	Images      []string        `json:"images"`
	Image       string          `json:"image"`
	Sizes       []string        `json:"sizes"`
	IsNew       bool            `json:"isNew"`
	IsFeatured  bool            `json:"isFeatured"`
	InStock     bool            `json:"inStock"`
}

func main() {
	var (
		databaseURL  string
		productsFile string
		apiKey       string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "path to a products JSON file (defaults to the embedded catalog)")
	flag.StringVar(&apiKey, "api-key", "", "admin API key to seed (or DUKICKS_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or DUKICKS_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKey == "" {
		apiKey = os.Getenv("DUKICKS_SEED_API_KEY")
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("DUKICKS_API_KEY_PEPPER")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, databaseURL, productsFile, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, databaseURL, productsFile, apiKey, apiKeyPepper string) error {
	raw := db.SeedProducts
	if productsFile != "" {
		var err error
		raw, err = os.ReadFile(productsFile)
		if err != nil {
			return err
		}
	}

	var seed []productJSON
	if err := json.Unmarshal(raw, &seed); err != nil {
		return err
	}

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return err
	}

	repo := repository.NewProductRepository(pool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, pj := range seed {
		g.Go(func() error {
			p := catalog.Product{
				ID:          pj.ID,
				Brand:       pj.Brand,
				Model:       pj.Model,
				Name:        pj.Name,
				Category:    pj.Category,
				Description: pj.Description,
				Type:        pj.Type,
				Price:       pj.Price,
				Discount:    pj.Discount,
				Images:      pj.Images,
				Image:       pj.Image,
				Sizes:       pj.Sizes,
				IsNew:       pj.IsNew,
				IsFeatured:  pj.IsFeatured,
				InStock:     pj.InStock,
			}
			return repo.Create(gctx, &p)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("seeded products", "count", len(seed))

	if apiKey != "" {
		mac := hmac.New(sha256.New, []byte(apiKeyPepper))
		mac.Write([]byte(apiKey))
		hash := hex.EncodeToString(mac.Sum(nil))

		_, err := pool.Exec(ctx,
			`INSERT INTO api_keys (id, key_hash, name) VALUES ($1, $2, $3)
			 ON CONFLICT (key_hash) DO NOTHING`,
			uuid.New().String(), hash, "seed-admin",
		)
		if err != nil {
			return err
		}
		slog.Info("seeded admin api key")
	}

	return nil
}
