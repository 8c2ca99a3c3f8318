// Package firestore contains the concrete implementation of the persistence
// layer backed by Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"

	"storefront/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Collection names in the document store.
const (
	productsCollection = "products"
	ordersCollection   = "orders"
	cartsCollection    = "carts"
	usersCollection    = "users"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Firestore client via the Firebase SDK.
func New(params Params) (*firestore.Client, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.ProjectID == "" {
		return nil, errors.New("firebase projectId must be provided")
	}

	ctx := context.Background()
	conf := &firebase.Config{ProjectID: cfg.ProjectID}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return client.Close()
		},
	})

	return client, nil
}
