package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mocktail/internal/domain"
	"mocktail/internal/interfaces"
)

// historyStore keeps the whole history as one JSON array on disk, read and
// rewritten in full on every append. The mutex covers the complete
// load-modify-write cycle so concurrent checkouts cannot overwrite each
// other's entries.
type historyStore struct {
	path string
	mu   sync.Mutex
}

func NewHistoryStore(path string) interfaces.HistoryStore {
	return &historyStore{path: path}
}

func (s *historyStore) Load(ctx context.Context) ([]domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *historyStore) Append(ctx context.Context, items []domain.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load()
	if err != nil {
		return err
	}

	return s.write(append(history, items...))
}

// load reads the full history. A missing file is first use, not an error.
func (s *historyStore) load() ([]domain.OrderItem, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var history []domain.OrderItem
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}

	return history, nil
}

// write replaces the file atomically: the new state lands in a temp file in
// the same directory and is renamed over the old one, so readers never see a
// half-written array.
func (s *historyStore) write(history []domain.OrderItem) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".orders-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp history file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	return nil
}
