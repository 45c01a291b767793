package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type roundService struct {
	activityRepo ports.ActivityRepository
	logoRepo     ports.LogoRepository
	now          func() time.Time
}

func NewRoundService(activityRepo ports.ActivityRepository, logoRepo ports.LogoRepository) ports.RoundService {
	return &roundService{
		activityRepo: activityRepo,
		logoRepo:     logoRepo,
		now:          time.Now,
	}
}

// CurrentRound is a lock-free snapshot of the authoritative round clock.
// Expiry is advisory: TimeRemaining bottoms out at zero but nothing here
// advances the round.
func (s *roundService) CurrentRound(ctx context.Context, activityID uuid.UUID) (*ports.RoundView, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Type != domain.TypeGuessLogo {
		return nil, domain.ErrInvalidInput
	}
	cfg := activity.Config.GuessLogo
	if !activity.IsLive() || cfg.LogoStartedAt == nil {
		return nil, domain.ErrNotLive
	}

	logo, err := s.logoRepo.GetByIndex(ctx, activityID, cfg.CurrentLogoIndex)
	if err != nil {
		return nil, err
	}

	serverTime := s.now()
	elapsedSeconds := serverTime.Sub(*cfg.LogoStartedAt).Seconds()
	timeRemaining := int(math.Ceil(float64(cfg.TimePerLogo) - elapsedSeconds))
	if timeRemaining < 0 {
		timeRemaining = 0
	}
	if timeRemaining > cfg.TimePerLogo {
		timeRemaining = cfg.TimePerLogo
	}

	view := &ports.RoundView{
		Index:         cfg.CurrentLogoIndex,
		LogoURL:       logo.LogoURL,
		TotalLogos:    cfg.LogoCount,
		TimePerLogo:   cfg.TimePerLogo,
		LogoStartedAt: *cfg.LogoStartedAt,
		ServerTime:    serverTime,
		TimeRemaining: timeRemaining,
	}
	// the server alone decides whether hints are visible
	if cfg.ShowHints {
		view.Hints = logo.Hints
	}
	return view, nil
}
