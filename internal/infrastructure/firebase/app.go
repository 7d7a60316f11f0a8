package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"artifex/pkg/logger"
)

type Credentials struct {
	ProjectID          string
	ServiceAccountJSON string
	ServiceAccountPath string
}

// ClientOptions picks the service account from inline JSON first, then from
// a file. With neither set it falls back to application default credentials.
func (c Credentials) ClientOptions() ([]option.ClientOption, error) {
	if c.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(c.ServiceAccountJSON))}, nil
	}
	if c.ServiceAccountPath != "" {
		if _, err := os.Stat(c.ServiceAccountPath); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", c.ServiceAccountPath, err)
		}
		logger.Info("Using Firebase service account from file: %s", c.ServiceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(c.ServiceAccountPath)}, nil
	}
	logger.Info("Using application default credentials")
	return nil, nil
}

// NewFirestoreClient initialises the Firebase app and returns its Firestore
// client. The caller owns the client and must Close it.
func NewFirestoreClient(ctx context.Context, creds Credentials) (*firestore.Client, error) {
	opts, err := creds.ClientOptions()
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: creds.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}
