package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/services"
)

// Curator makes sure the bootstrap curator account exists. An empty password
// skips the account, so that no default credentials are ever created.
func Curator(ctx context.Context, users *services.UserService, username, password string, log *zap.Logger) error {
	if password == "" {
		log.Warn("CURATOR_PASSWORD is not set, skipping curator account", zap.String("username", username))
		return nil
	}

	created, err := users.EnsureUser(ctx, username, password)
	if err != nil {
		return fmt.Errorf("failed to create curator %q: %w", username, err)
	}
	if created {
		log.Info("curator account created", zap.String("username", username))
	} else {
		log.Info("curator account already exists", zap.String("username", username))
	}
	return nil
}

// Catalog imports the reference data and artifacts of the workbook at path.
func Catalog(ctx context.Context, importer *services.ImportService, path string, log *zap.Logger) (*services.ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	result, err := importer.ImportCatalog(ctx, file)
	if err != nil {
		return nil, err
	}
	for _, msg := range result.Errors {
		log.Warn("catalog row skipped", zap.String("detail", msg))
	}
	if len(result.Errors) > 0 {
		return result, errors.New("catalog imported with errors")
	}
	return result, nil
}
