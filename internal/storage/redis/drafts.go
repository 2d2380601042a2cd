// Package redis persists configuration drafts. Each owner (a browser
// session or account) holds one capped, most-recent-first list of drafts
// stored as a single JSON value, mirroring how the widget kept them in
// local storage.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"configureflow/internal/catalog"
)

// Drafts beyond this count are evicted oldest-first on save.
const maxDraftsPerOwner = 10

const draftTTL = 30 * 24 * time.Hour

type Store struct {
	client *redis.Client
}

// New creates a draft store over an existing Redis client. The client is
// shared with the catalog cache; Close closes it for both.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// NewClient dials Redis with the pool settings the service uses everywhere.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     100,
		MinIdleConns: 10,
	})
}

// Close closes the Redis connection.
func (s *Store) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

// Save snapshots a configuration as a named draft at the front of the
// owner's list, evicting the oldest entry past the cap.
func (s *Store) Save(ctx context.Context, owner string, cfg catalog.Configuration, name string) (catalog.Draft, error) {
	drafts, err := s.load(ctx, owner)
	if err != nil {
		return catalog.Draft{}, err
	}

	now := time.Now().UTC()
	if name == "" {
		name = fmt.Sprintf("Draft %s", now.Format("15:04:05"))
	}

	draft := catalog.Draft{
		ID:            uuid.NewString(),
		Configuration: cfg.Clone(),
		SavedAt:       now,
		Name:          name,
	}

	if err := s.store(ctx, owner, prepend(drafts, draft, maxDraftsPerOwner)); err != nil {
		return catalog.Draft{}, err
	}
	return draft, nil
}

// Load returns the draft with the given id. Absence is not an error.
func (s *Store) Load(ctx context.Context, owner, draftID string) (catalog.Draft, bool, error) {
	drafts, err := s.load(ctx, owner)
	if err != nil {
		return catalog.Draft{}, false, err
	}

	for _, d := range drafts {
		if d.ID == draftID {
			return d, true, nil
		}
	}
	return catalog.Draft{}, false, nil
}

// List returns the owner's drafts, most recent first.
func (s *Store) List(ctx context.Context, owner string) ([]catalog.Draft, error) {
	return s.load(ctx, owner)
}

// Delete removes a draft and reports whether anything was deleted.
func (s *Store) Delete(ctx context.Context, owner, draftID string) (bool, error) {
	drafts, err := s.load(ctx, owner)
	if err != nil {
		return false, err
	}

	kept := remove(drafts, draftID)
	if len(kept) == len(drafts) {
		return false, nil
	}

	if err := s.store(ctx, owner, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) load(ctx context.Context, owner string) ([]catalog.Draft, error) {
	data, err := s.client.Get(ctx, buildDraftsKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []catalog.Draft{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get drafts: %w", err)
	}

	var drafts []catalog.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("unmarshal drafts: %w", err)
	}
	return drafts, nil
}

func (s *Store) store(ctx context.Context, owner string, drafts []catalog.Draft) error {
	data, err := json.Marshal(drafts)
	if err != nil {
		return fmt.Errorf("marshal drafts: %w", err)
	}
	if err := s.client.Set(ctx, buildDraftsKey(owner), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("set drafts: %w", err)
	}
	return nil
}

func buildDraftsKey(owner string) string {
	return fmt.Sprintf("drafts:%s", owner)
}

// prepend puts the new draft first and trims the list to the cap.
func prepend(drafts []catalog.Draft, draft catalog.Draft, limit int) []catalog.Draft {
	out := make([]catalog.Draft, 0, len(drafts)+1)
	out = append(out, draft)
	out = append(out, drafts...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func remove(drafts []catalog.Draft, draftID string) []catalog.Draft {
	out := make([]catalog.Draft, 0, len(drafts))
	for _, d := range drafts {
		if d.ID != draftID {
			out = append(out, d)
		}
	}
	return out
}
