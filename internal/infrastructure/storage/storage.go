// Package storage provides the backends for uploaded ticket files.
package storage

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// New returns the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, log logger.Interface) (usecases.FileStorage, error) {
	switch cfg.Driver {
	case config.StorageLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case config.StorageMinio:
		return NewMinioStorage(ctx, cfg.Minio, log)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
