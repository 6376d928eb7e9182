package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

const (
	notebookKeyPrefix = "notebook:"
	selectedKey       = "meta:selected"
)

type BadgerOptions struct {
	Path     string
	InMemory bool
}

// OpenBadger opens the local key-value store, creating its directory if needed.
func OpenBadger(opts BadgerOptions, logger *zap.Logger) (*badger.DB, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("badger path is required for a persistent database")
		}
		if err := os.MkdirAll(opts.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", opts.Path, err)
		}
		bopts = badger.DefaultOptions(opts.Path).WithSyncWrites(true)
	}

	if logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: logger.Sugar()})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}

type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.logger.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.logger.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.logger.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.logger.Debugf(format, args...) }

// notebookDocument is everything stored under one notebook key.
type notebookDocument struct {
	Notebook    domain.Notebook     `json:"notebook"`
	Nodes       []domain.Node       `json:"nodes"`
	Connections []domain.Connection `json:"connections"`
	UndoStack   []domain.Action     `json:"undo_stack,omitempty"`
	RedoStack   []domain.Action     `json:"redo_stack,omitempty"`
}

// BadgerStateRepository keeps one JSON document per notebook.
type BadgerStateRepository struct {
	db     *badger.DB
	logger *zap.Logger
}

func NewBadgerStateRepository(db *badger.DB, logger *zap.Logger) *BadgerStateRepository {
	return &BadgerStateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BadgerStateRepository) Save(ctx context.Context, state *domain.NotebookState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	docs := make(map[string][]byte, len(state.Notebooks))
	for _, nb := range state.Notebooks {
		only := state.Only(nb.ID)
		raw, err := json.Marshal(notebookDocument{
			Notebook:    nb,
			Nodes:       only.Nodes,
			Connections: only.Connections,
			UndoStack:   state.UndoStacks[nb.ID],
			RedoStack:   state.RedoStacks[nb.ID],
		})
		if err != nil {
			return fmt.Errorf("encode notebook %s: %w", nb.ID, err)
		}
		docs[notebookKeyPrefix+nb.ID] = raw
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		stale, err := keysWithPrefix(txn, notebookKeyPrefix)
		if err != nil {
			return err
		}
		for _, key := range stale {
			if _, keep := docs[key]; keep {
				continue
			}
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		for key, raw := range docs {
			if err := txn.Set([]byte(key), raw); err != nil {
				return err
			}
		}
		return txn.Set([]byte(selectedKey), []byte(state.SelectedNotebookID))
	})
	if err != nil {
		return fmt.Errorf("failed to save notebook state: %w", err)
	}

	r.logger.Debug("saved notebook state to badger", zap.Int("notebooks", len(docs)))
	return nil
}

func (r *BadgerStateRepository) Load(ctx context.Context, notebookID string) (*domain.NotebookState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state := &domain.NotebookState{
		UndoStacks: map[string][]domain.Action{},
		RedoStacks: map[string][]domain.Action{},
	}

	err := r.db.View(func(txn *badger.Txn) error {
		var keys []string
		if notebookID != "" {
			keys = []string{notebookKeyPrefix + notebookID}
		} else {
			var err error
			if keys, err = keysWithPrefix(txn, notebookKeyPrefix); err != nil {
				return err
			}
		}

		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var doc notebookDocument
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			state.Notebooks = append(state.Notebooks, doc.Notebook)
			state.Nodes = append(state.Nodes, doc.Nodes...)
			state.Connections = append(state.Connections, doc.Connections...)
			if len(doc.UndoStack) > 0 {
				state.UndoStacks[doc.Notebook.ID] = doc.UndoStack
			}
			if len(doc.RedoStack) > 0 {
				state.RedoStacks[doc.Notebook.ID] = doc.RedoStack
			}
		}

		item, err := txn.Get([]byte(selectedKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		selected, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if notebookID == "" || string(selected) == notebookID {
			state.SelectedNotebookID = string(selected)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load notebook state: %w", err)
	}
	return state, nil
}

func keysWithPrefix(txn *badger.Txn, prefix string) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	var keys []string
	for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
		keys = append(keys, string(it.Item().KeyCopy(nil)))
	}
	return keys, nil
}
