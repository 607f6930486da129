package storage

import (
	"fmt"

	"github.com/bobmcallan/rentvest/internal/common"
	"github.com/bobmcallan/rentvest/internal/interfaces"
	"github.com/bobmcallan/rentvest/internal/storage/surrealdb"
)

// Backend type constants.
const (
	BackendFile      = "file"
	BackendSurrealDB = "surrealdb"
)

// NewPortfolioStore creates a portfolio store based on the configuration.
// Supported backends: "file" (default), "surrealdb".
func NewPortfolioStore(logger *common.Logger, config *common.StorageConfig) (interfaces.PortfolioStore, error) {
	backend := config.Backend
	if backend == "" {
		backend = BackendFile
	}

	switch backend {
	case BackendFile:
		return NewFileStore(logger, config)

	case BackendSurrealDB:
		return surrealdb.NewPortfolioStore(logger, config)

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: file, surrealdb)", backend)
	}
}
