package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/AndrivA89/brain-dump/internal/config"
	"github.com/AndrivA89/brain-dump/internal/history"
	"github.com/AndrivA89/brain-dump/internal/logger"
	"github.com/AndrivA89/brain-dump/internal/repository"
	"github.com/AndrivA89/brain-dump/internal/store"
	"github.com/AndrivA89/brain-dump/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

// application holds everything a command needs, opened from the environment.
type application struct {
	logger  *zap.Logger
	useCase *usecase.NotebookUseCase
	closers []func() error
}

func openApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &application{logger: zl}

	repo, err := a.openRepository(ctx, cfg)
	if err != nil {
		a.close()
		return nil, err
	}

	st := store.New(store.UUIDGenerator{}, store.SystemClock{})
	a.useCase = usecase.NewNotebookUseCase(st, history.New(cfg.History.MaxDepth), repo)

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := a.useCase.Load(loadCtx); err != nil {
		a.close()
		return nil, err
	}

	zl.Info("notebooks loaded",
		zap.String("driver", cfg.Storage.Driver),
		zap.Int("notebooks", len(a.useCase.Notebooks())))
	return a, nil
}

func (a *application) openRepository(ctx context.Context, cfg *config.Config) (usecase.StateRepository, error) {
	switch cfg.Storage.Driver {
	case config.DriverNeo4j:
		driver, err := neo4j.NewDriverWithContext(
			cfg.Storage.Neo4j.URI,
			neo4j.BasicAuth(cfg.Storage.Neo4j.Username, cfg.Storage.Neo4j.Password, ""),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
		}
		a.closers = append(a.closers, func() error { return driver.Close(context.Background()) })
		if err := driver.VerifyConnectivity(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to Neo4j at %s: %w", cfg.Storage.Neo4j.URI, err)
		}
		return repository.NewNeo4jStateRepository(driver, a.logger), nil
	default:
		db, err := repository.OpenBadger(repository.BadgerOptions{
			Path:     cfg.Storage.Badger.Path,
			InMemory: cfg.Storage.Badger.InMemory,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return repository.NewBadgerStateRepository(db, a.logger), nil
	}
}

func (a *application) save() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.useCase.Save(ctx)
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close storage", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
