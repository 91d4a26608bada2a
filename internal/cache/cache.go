// Package cache persists research records so repeated investigations of the
// same topic skip the agent fan-out entirely.
package cache

import (
	"bookforge/internal/db"
	"bookforge/internal/errors"
	"bookforge/internal/models"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
)

// Store is a sqlite-backed research record cache keyed by normalized topic.
type Store struct {
	db     *db.Database
	logger *slog.Logger
}

func NewStore(database *db.Database, logger *slog.Logger) *Store {
	return &Store{
		db:     database,
		logger: logger.With("source", "cache.Store"),
	}
}

// normalizeTopic collapses trivially different spellings of the same topic
// onto one cache key.
func normalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// Get returns the cached record for topic. A corrupted row counts as a miss
// and is deleted so the next write replaces it cleanly.
func (s *Store) Get(ctx context.Context, topic string) (*models.ResearchRecord, bool, error) {
	key := normalizeTopic(topic)

	var raw string
	err := s.db.ReadOnly.GetContext(ctx, &raw, "SELECT record FROM research_cache WHERE topic = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "read research cache", slog.String("topic", key))
	}

	var record models.ResearchRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.WarnContext(ctx, "corrupted cache row, evicting",
			slog.String("topic", key), errors.SlogError(err))
		if _, deleteErr := s.db.ReadWrite.ExecContext(ctx, "DELETE FROM research_cache WHERE topic = ?", key); deleteErr != nil {
			return nil, false, errors.Wrap(deleteErr, "evict corrupted cache row", slog.String("topic", key))
		}
		return nil, false, nil
	}
	return &record, true, nil
}

// Put stores record under topic, replacing any previous entry.
func (s *Store) Put(ctx context.Context, topic string, record *models.ResearchRecord) error {
	key := normalizeTopic(topic)
	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal research record")
	}

	_, err = s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO research_cache (topic, record) VALUES (?, ?)
		ON CONFLICT (topic) DO UPDATE SET record = excluded.record, created_at = unixepoch()`,
		key, string(raw))
	if err != nil {
		return errors.Wrap(err, "write research cache", slog.String("topic", key))
	}
	return nil
}
