// Command seed loads demo catalog data and accounts into Firestore so a
// fresh deployment has something to show. Safe to re-run; products are
// matched by SKU and accounts by email, and existing documents are skipped.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	logs "storefront/internal/infra/log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	productsCollection = "products"
	usersCollection    = "users"

	demoAdminEmail    = "admin@demostore.com"
	demoCustomerEmail = "customer@demostore.com"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	created, err := seedProducts(ctx, client, logger)
	if err != nil {
		return err
	}
	logger.Info("Product seeding done", slog.Int("created", created))

	if err := seedAccounts(ctx, client, cfg, logger); err != nil {
		return err
	}

	logger.Info("Database seeding completed")

	return nil
}

func newClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		return nil, errors.New("firebase projectId must be provided")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	return client, nil
}

func seedProducts(ctx context.Context, client *firestore.Client, logger *slog.Logger) (int, error) {
	now := time.Now()
	created := 0

	for _, product := range demoProducts() {
		exists, err := docExists(ctx, client.Collection(productsCollection).
			Where("sku", "==", product.SKU))
		if err != nil {
			return created, errors.Wrapf(err, "failed to check product %s", product.SKU)
		}
		if exists {
			logger.Debug("Product already seeded, skipping", slog.String("sku", product.SKU))

			continue
		}

		product.SearchKeywords = entity.SearchTokens(product.Name, entity.CategoryName(product.Category), product.Tags)
		product.CreatedAt = now
		product.UpdatedAt = now

		if _, _, err := client.Collection(productsCollection).Add(ctx, product); err != nil {
			return created, errors.Wrapf(err, "failed to seed product %s", product.SKU)
		}
		created++
	}

	return created, nil
}

func seedAccounts(ctx context.Context, client *firestore.Client, cfg *config.Config, logger *slog.Logger) error {
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo-store-2024"
		logger.Warn("SEED_PASSWORD not set, using the default demo password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Auth.BcryptCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash seed password")
	}

	accounts := []*entity.User{
		{
			Email: demoAdminEmail,
			Name:  "Admin User",
			Roles: []string{entity.RoleUser, entity.RoleAdmin},
		},
		{
			Email: demoCustomerEmail,
			Name:  "Demo Customer",
			Roles: []string{entity.RoleUser},
		},
	}

	now := time.Now()
	for _, account := range accounts {
		exists, err := docExists(ctx, client.Collection(usersCollection).
			Where("email", "==", account.Email))
		if err != nil {
			return errors.Wrapf(err, "failed to check account %s", account.Email)
		}
		if exists {
			logger.Debug("Account already seeded, skipping", slog.String("email", account.Email))

			continue
		}

		account.PasswordHash = string(hash)
		account.CreatedAt = now
		account.UpdatedAt = now

		if _, _, err := client.Collection(usersCollection).Add(ctx, account); err != nil {
			return errors.Wrapf(err, "failed to seed account %s", account.Email)
		}
		logger.Info("Seeded account", slog.String("email", account.Email))
	}

	return nil
}

func docExists(ctx context.Context, query firestore.Query) (bool, error) {
	iter := query.Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, errors.WithStack(err)
	}

	return true, nil
}

// demoProducts is the demo catalog. Category values use canonical IDs; the
// storefront also accepts display names on documents written by older tools.
func demoProducts() []*entity.Product {
	return []*entity.Product{
		{
			Name:          "Wireless Bluetooth Headphones",
			Description:   "Premium quality wireless headphones with noise cancellation and 30-hour battery life.",
			Price:         299.99,
			OriginalPrice: 399.99,
			Category:      "electronics",
			SKU:           "WH001",
			Stock:         25,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=600",
			Tags:          []string{"wireless", "bluetooth", "headphones", "audio", "music"},
			Rating:        4.5,
			ReviewCount:   128,
			Featured:      true,
		},
		{
			Name:          "Smartphone Pro Max",
			Description:   "Latest flagship smartphone with advanced camera system and 5G connectivity.",
			Price:         999.99,
			OriginalPrice: 999.99,
			Category:      "electronics",
			SKU:           "SP002",
			Stock:         15,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=600",
			Tags:          []string{"smartphone", "mobile", "5g", "camera", "ios"},
			Rating:        4.8,
			ReviewCount:   245,
			Featured:      true,
		},
		{
			Name:          "Classic Cotton T-Shirt",
			Description:   "Comfortable 100% cotton t-shirt available in multiple colors and sizes.",
			Price:         24.99,
			OriginalPrice: 24.99,
			Category:      "clothing",
			SKU:           "TS003",
			Stock:         50,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=600",
			Tags:          []string{"t-shirt", "cotton", "casual", "comfortable", "basic"},
			Rating:        4.2,
			ReviewCount:   89,
		},
		{
			Name:          "Professional Running Shoes",
			Description:   "High-performance running shoes with advanced cushioning and breathable design.",
			Price:         149.99,
			OriginalPrice: 199.99,
			Category:      "sports",
			SKU:           "RS004",
			Stock:         30,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=600",
			Tags:          []string{"running", "shoes", "sports", "fitness", "athletic"},
			Rating:        4.6,
			ReviewCount:   156,
			Featured:      true,
		},
		{
			Name:          "Automatic Coffee Maker",
			Description:   "Programmable coffee maker with built-in grinder and thermal carafe.",
			Price:         199.99,
			OriginalPrice: 199.99,
			Category:      "home",
			SKU:           "CM005",
			Stock:         20,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=600",
			Tags:          []string{"coffee", "maker", "kitchen", "appliance", "automatic"},
			Rating:        4.4,
			ReviewCount:   73,
		},
		{
			Name:          "Fiction Bestseller Collection",
			Description:   "Collection of top 10 fiction bestsellers from this year.",
			Price:         89.99,
			OriginalPrice: 129.99,
			Category:      "books",
			SKU:           "BC006",
			Stock:         40,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=600",
			Tags:          []string{"books", "fiction", "bestseller", "collection", "reading"},
			Rating:        4.7,
			ReviewCount:   92,
			Featured:      true,
		},
		{
			Name:          "Yoga Mat Premium",
			Description:   "Extra thick yoga mat with superior grip and eco-friendly materials.",
			Price:         49.99,
			OriginalPrice: 49.99,
			Category:      "sports",
			SKU:           "YM007",
			Stock:         35,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=600",
			Tags:          []string{"yoga", "mat", "fitness", "exercise", "wellness"},
			Rating:        4.3,
			ReviewCount:   67,
		},
		{
			Name:          "Smart Watch Series 5",
			Description:   "Advanced smartwatch with health monitoring and GPS tracking.",
			Price:         399.99,
			OriginalPrice: 399.99,
			Category:      "electronics",
			SKU:           "SW008",
			Stock:         18,
			Status:        entity.ProductStatusActive,
			Image:         "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=600",
			Tags:          []string{"smartwatch", "wearable", "fitness", "gps", "health"},
			Rating:        4.5,
			ReviewCount:   134,
			Featured:      true,
		},
	}
}
