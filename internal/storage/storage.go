// Package storage selects the repository backend named by the configuration.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/domain"
	dbbadger "github.com/AlexZinkM/vendora/internal/storage/badger"
	"github.com/AlexZinkM/vendora/internal/storage/inmemory"
	postgresdb "github.com/AlexZinkM/vendora/internal/storage/postgres"
)

const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Options carries what the backends need to open.
type Options struct {
	Driver      string
	DataDir     string
	DatabaseURL string
	Logger      *zap.Logger
}

// Open returns the RepoManager for opts.Driver.
func Open(ctx context.Context, opts Options) (domain.RepoManager, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return inmemory.NewRepoManager(), nil
	case DriverBadger:
		return dbbadger.NewRepoManager(filepath.Join(opts.DataDir, "db"), opts.Logger)
	case DriverPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("%s driver: DATABASE_URL is empty", DriverPostgres)
		}
		return postgresdb.NewRepoManager(ctx, opts.DatabaseURL, opts.Logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
