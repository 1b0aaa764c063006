// Package prefs persists per-user notification preferences. Every read
// degrades to a default when the backing store is missing or failing, and
// every write is fire-and-forget: a broken preference store must never break
// the operation it decorates.
package prefs

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

const DefaultSound = "default"

// ErrNotFound is returned by a KV when the key has never been written.
var ErrNotFound = errors.New("preference not found")

// KV is the minimal key/value surface the store needs. The production
// implementation is Redis; tests use an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

type Store struct {
	logger zerolog.Logger
	kv     KV
}

// New builds a preference store. A nil kv marks the backend as unavailable:
// reads answer with defaults and writes are dropped with a warning.
func New(logger zerolog.Logger, kv KV) *Store {
	return &Store{
		logger: logger,
		kv:     kv,
	}
}

func (s *Store) Available() bool {
	return s.kv != nil
}

func soundKey(userID string) string {
	return "prefs:" + userID + ":reminder_sound"
}

func customURIKey(userID string) string {
	return "prefs:" + userID + ":custom_sound_uri"
}

// SelectedSound returns the user's chosen reminder sound key, or "default"
// when unset or the store is unavailable.
func (s *Store) SelectedSound(ctx context.Context, userID string) string {
	if s.kv == nil {
		return DefaultSound
	}

	sound, err := s.kv.Get(ctx, soundKey(userID))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().
				Err(err).
				Str("user_id", userID).
				Msg("failed to read reminder sound, using default")
		}
		return DefaultSound
	}
	if sound == "" {
		return DefaultSound
	}
	return sound
}

func (s *Store) SetSelectedSound(ctx context.Context, userID, sound string) {
	if s.kv == nil {
		s.logger.Warn().Msg("preference store unavailable, dropping reminder sound")
		return
	}
	if sound == "" {
		sound = DefaultSound
	}

	err := s.kv.Set(ctx, soundKey(userID), sound)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("failed to persist reminder sound")
	}
}

// CustomSoundURI returns the user's custom sound URI, or nil when none is set
// or the store is unavailable.
func (s *Store) CustomSoundURI(ctx context.Context, userID string) *string {
	if s.kv == nil {
		return nil
	}

	uri, err := s.kv.Get(ctx, customURIKey(userID))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().
				Err(err).
				Str("user_id", userID).
				Msg("failed to read custom sound uri")
		}
		return nil
	}
	if uri == "" {
		return nil
	}
	return &uri
}

func (s *Store) SetCustomSoundURI(ctx context.Context, userID string, uri *string) {
	if s.kv == nil {
		s.logger.Warn().Msg("preference store unavailable, dropping custom sound uri")
		return
	}

	var err error
	if uri == nil || *uri == "" {
		err = s.kv.Del(ctx, customURIKey(userID))
	} else {
		err = s.kv.Set(ctx, customURIKey(userID), *uri)
	}
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("failed to persist custom sound uri")
	}
}
