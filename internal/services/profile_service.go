package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/saikiran-1508/chronicle/internal/models"
)

type profileServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewProfileService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) ProfileService {
	return &profileServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const selectProfileQuery = `
SELECT name, avatar
FROM profiles
WHERE user_id = $1
`
	profile := &models.Profile{UserID: userID}
	err := s.pgPool.QueryRow(
		ctx,
		selectProfileQuery,
		userID,
	).Scan(
		&profile.Name,
		&profile.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// First read after registration gets the defaults.
			profile.Name = models.DefaultProfileName
			profile.Avatar = models.DefaultProfileAvatar
			return profile, nil
		}

		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select profile")
		return nil, err
	}

	return profile, nil
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.Profile, error) {
	profile, err := s.GetProfile(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			name = models.DefaultProfileName
		}
		profile.Name = name
	}
	if params.Avatar != nil {
		avatar := *params.Avatar
		if avatar == "" {
			avatar = models.DefaultProfileAvatar
		}
		profile.Avatar = avatar
	}

	const upsertProfileQuery = `
INSERT INTO profiles (user_id, name, avatar, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id)
DO UPDATE SET name = EXCLUDED.name,
              avatar = EXCLUDED.avatar,
              updated_at = EXCLUDED.updated_at
`
	_, err = s.pgPool.Exec(
		ctx,
		upsertProfileQuery,
		profile.UserID,
		profile.Name,
		profile.Avatar,
		time.Now(),
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to upsert profile")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", params.UserID).
		Msg("updated profile")
	return profile, nil
}
