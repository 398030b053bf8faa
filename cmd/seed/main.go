package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/fixtures"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main migrates the products table and loads the demo catalog.
// Usage: go run ./cmd/seed [migrate|products|all]
// This is a standalone CLI tool, not part of the main application
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Prepare the storefront database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var truncate bool

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the products table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			banner("Schema Migration")
			return migrateProducts(config.Load())
		},
	}

	products := &cobra.Command{
		Use:   "products",
		Short: "Load the fixture catalog into the products table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			banner("Product Seeder")
			return seedProducts(cmd.Context(), config.Load(), truncate)
		},
	}
	products.Flags().BoolVar(&truncate, "truncate", false, "empty the products table before loading")

	all := &cobra.Command{
		Use:   "all",
		Short: "Run migrate then products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			banner("Migrate + Seed")
			cfg := config.Load()
			if err := migrateProducts(cfg); err != nil {
				return err
			}
			return seedProducts(cmd.Context(), cfg, truncate)
		},
	}
	all.Flags().BoolVar(&truncate, "truncate", false, "empty the products table before loading")

	root.AddCommand(migrate, products, all)
	return root
}

func banner(title string) {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("MODEVA STOREFRONT - %s\n", title)
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
}

func migrateProducts(cfg config.AppConfig) error {
	db, err := config.OpenGorm(cfg.DatabaseDSN(), true)
	if err != nil {
		return err
	}
	defer config.CloseGorm(db)

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("auto-migrate products: %w", err)
	}
	fmt.Println("✓ products table is up to date")
	return nil
}

func seedProducts(ctx context.Context, cfg config.AppConfig, truncate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	pool, err := config.OpenPgx(ctx, cfg.DatabaseDSN())
	if err != nil {
		return err
	}
	defer pool.Close()
	fmt.Println("✓ Connected to database")

	if truncate {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE products"); err != nil {
			return fmt.Errorf("truncate products: %w", err)
		}
		fmt.Println("✓ products table emptied")
	}

	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&existing); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		fmt.Printf("⚠️  products already holds %d rows, skipping (use --truncate to reload)\n", existing)
		return nil
	}

	catalog, err := fixtures.Products()
	if err != nil {
		return err
	}
	rows, err := productRows(catalog, time.Now().UTC())
	if err != nil {
		return err
	}

	copied, err := pool.CopyFrom(ctx, pgx.Identifier{"products"}, productColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy products: %w", err)
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("✅ Seeded %d products\n", copied)
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Set PRODUCT_SOURCE=postgres")
	fmt.Println("2. Start the server: go run .")
	fmt.Println()
	return nil
}

var productColumns = []string{
	"id", "title", "description", "category", "subcategory", "brand",
	"price", "rating", "stock", "thumbnail", "images", "created_at", "updated_at",
}

// productRows lays fixtures out in productColumns order. Products without a
// creation time are stamped one second apart so the default ordering is
// stable.
func productRows(products []models.Product, now time.Time) ([][]any, error) {
	rows := make([][]any, 0, len(products))
	for i, p := range products {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, fmt.Errorf("product %q: invalid id: %w", p.Title, err)
		}

		created := p.CreatedAt
		if created.IsZero() {
			created = now.Add(-time.Duration(i) * time.Second)
		}
		var images any
		if len(p.Images) > 0 {
			images = []byte(p.Images)
		}

		rows = append(rows, []any{
			pgtype.UUID{Bytes: id, Valid: true},
			p.Title, p.Description, p.Category, p.Subcategory, p.Brand,
			p.Price, p.Rating, p.Stock, p.Thumbnail, images, created, created,
		})
	}
	return rows, nil
}
