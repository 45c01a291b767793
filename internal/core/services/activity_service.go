package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
	"github.com/vncsmyrnk/engage/internal/observability"
)

type activityService struct {
	transactor   ports.Transactor
	activityRepo ports.ActivityRepository
	responseRepo ports.ResponseRepository
	logoRepo     ports.LogoRepository
	rosterRepo   ports.RosterRepository
	publisher    ports.LifecyclePublisher
	now          func() time.Time
}

func NewActivityService(
	transactor ports.Transactor,
	activityRepo ports.ActivityRepository,
	responseRepo ports.ResponseRepository,
	logoRepo ports.LogoRepository,
	rosterRepo ports.RosterRepository,
	publisher ports.LifecyclePublisher,
) ports.ActivityService {
	return &activityService{
		transactor:   transactor,
		activityRepo: activityRepo,
		responseRepo: responseRepo,
		logoRepo:     logoRepo,
		rosterRepo:   rosterRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *activityService) Create(ctx context.Context, input ports.CreateActivityInput) (*domain.Activity, error) {
	if !input.Type.Valid() || input.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !status.Valid() || status == domain.StatusEnded {
		return nil, domain.ErrInvalidInput
	}
	if err := input.Config.Validate(input.Type); err != nil {
		return nil, err
	}

	now := s.now()
	activity := &domain.Activity{
		ID:                 uuid.New(),
		EventID:            input.EventID,
		Type:               input.Type,
		Title:              input.Title,
		Status:             status,
		ScheduledStartTime: input.ScheduledStartTime,
		Config:             input.Config,
		CreatedAt:          now,
	}

	if activity.Config.Poll != nil {
		for i := range activity.Config.Poll.Options {
			if activity.Config.Poll.Options[i].ID == uuid.Nil {
				activity.Config.Poll.Options[i].ID = uuid.New()
			}
		}
	}

	// An activity launched directly into live gets the same stamps start
	// would apply.
	if status == domain.StatusLive {
		activity.ActualStartTime = &now
		if g := activity.Config.GuessLogo; g != nil {
			g.CurrentLogoIndex = 0
			g.LogoStartedAt = &now
		}
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Get(ctx context.Context, id string) (*domain.Activity, error) {
	activityID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidActivityID
	}
	return s.activityRepo.GetByID(ctx, activityID)
}

func (s *activityService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Activity, error) {
	return s.activityRepo.ListByEvent(ctx, eventID)
}

func (s *activityService) Update(ctx context.Context, id uuid.UUID, input ports.UpdateActivityInput) (*domain.Activity, error) {
	var updated *domain.Activity
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		activity, err := s.activityRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if activity.IsEnded() {
			return domain.ErrActivityEnded
		}

		if input.Title != nil {
			if *input.Title == "" {
				return domain.ErrInvalidInput
			}
			activity.Title = *input.Title
		}
		if input.ScheduledStartTime != nil {
			activity.ScheduledStartTime = input.ScheduledStartTime
		}
		if input.Config != nil {
			if err := input.Config.Validate(activity.Type); err != nil {
				return err
			}
			activity.Config = *input.Config
		}
		if input.Status != nil {
			if err := s.applyStatus(activity, *input.Status); err != nil {
				return err
			}
		}

		updated = activity
		return s.activityRepo.Update(ctx, activity)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyStatus enforces forward-only transitions: draft and scheduled are
// interchangeable before the activity goes live, live never moves backward.
func (s *activityService) applyStatus(activity *domain.Activity, status domain.ActivityStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidInput
	}
	if activity.Status == domain.StatusLive && (status == domain.StatusDraft || status == domain.StatusScheduled) {
		return domain.ErrInvalidInput
	}

	now := s.now()
	if status == domain.StatusLive && activity.Status != domain.StatusLive {
		activity.ActualStartTime = &now
	}
	if status == domain.StatusEnded {
		activity.EndedAt = &now
	}
	activity.Status = status
	return nil
}

// Start moves the activity to live. For guess-logo activities this is the
// startGame transition: the round pointer resets and the round clock anchors.
func (s *activityService) Start(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var started *domain.Activity
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		activity, err := s.activityRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if activity.IsEnded() {
			return domain.ErrActivityEnded
		}

		now := s.now()
		activity.Status = domain.StatusLive
		activity.ActualStartTime = &now
		if g := activity.Config.GuessLogo; g != nil {
			g.CurrentLogoIndex = 0
			g.LogoStartedAt = &now
		}

		started = activity
		return s.activityRepo.Update(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	observability.RecordActivityStarted()
	s.publish(ctx, ports.LifecycleEvent{
		Kind:       ports.EventActivityStarted,
		ActivityID: started.ID,
		EventID:    started.EventID,
		Type:       started.Type,
		OccurredAt: *started.ActualStartTime,
	})
	return started, nil
}

func (s *activityService) End(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var ended *domain.Activity
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		activity, err := s.activityRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if activity.IsEnded() {
			return domain.ErrActivityEnded
		}

		now := s.now()
		activity.Status = domain.StatusEnded
		activity.EndedAt = &now

		ended = activity
		return s.activityRepo.Update(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	observability.RecordActivityEnded()
	s.publish(ctx, ports.LifecycleEvent{
		Kind:       ports.EventActivityEnded,
		ActivityID: ended.ID,
		EventID:    ended.EventID,
		Type:       ended.Type,
		OccurredAt: *ended.EndedAt,
	})
	return ended, nil
}

// AdvanceRound moves a live guess-logo game to its next logo, or ends the
// game when the pointer runs off the list. The round boundary becomes hard
// only here; until an organizer calls this, expiry is advisory.
func (s *activityService) AdvanceRound(ctx context.Context, id uuid.UUID) (ports.AdvanceResult, error) {
	var (
		result   ports.AdvanceResult
		activity *domain.Activity
	)
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		activity, err = s.activityRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if activity.Type != domain.TypeGuessLogo {
			return domain.ErrInvalidInput
		}
		if activity.IsEnded() {
			return domain.ErrActivityEnded
		}
		if !activity.IsLive() {
			return domain.ErrNotLive
		}

		now := s.now()
		g := activity.Config.GuessLogo
		next := g.CurrentLogoIndex + 1
		if next >= g.LogoCount {
			activity.Status = domain.StatusEnded
			activity.EndedAt = &now
			result = ports.AdvanceResult{Ended: true}
		} else {
			g.CurrentLogoIndex = next
			g.LogoStartedAt = &now
			result = ports.AdvanceResult{Ended: false, NewIndex: next}
		}
		return s.activityRepo.Update(ctx, activity)
	})
	if err != nil {
		return ports.AdvanceResult{}, err
	}

	if result.Ended {
		observability.RecordActivityEnded()
		s.publish(ctx, ports.LifecycleEvent{
			Kind:       ports.EventActivityEnded,
			ActivityID: activity.ID,
			EventID:    activity.EventID,
			Type:       activity.Type,
			OccurredAt: *activity.EndedAt,
		})
	} else {
		observability.RecordRoundAdvanced()
		s.publish(ctx, ports.LifecycleEvent{
			Kind:       ports.EventRoundAdvanced,
			ActivityID: activity.ID,
			EventID:    activity.EventID,
			Type:       activity.Type,
			RoundIndex: result.NewIndex,
			OccurredAt: *activity.Config.GuessLogo.LogoStartedAt,
		})
	}
	return result, nil
}

// Remove cascades in child-first order so a storage engine without atomic
// multi-row delete still never leaves orphans: responses, logo items,
// roster, then the activity itself.
func (s *activityService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.activityRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.responseRepo.DeleteByActivity(ctx, id); err != nil {
			return err
		}
		if err := s.logoRepo.DeleteByActivity(ctx, id); err != nil {
			return err
		}
		if err := s.rosterRepo.DeleteByActivity(ctx, id); err != nil {
			return err
		}
		return s.activityRepo.Delete(ctx, id)
	})
}

// SeedLogoItems stores the content generator's ordered logo list. The list
// is immutable once the game has ended and must match the configured count.
func (s *activityService) SeedLogoItems(ctx context.Context, id uuid.UUID, items []domain.LogoItem) error {
	return s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		activity, err := s.activityRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if activity.Type != domain.TypeGuessLogo {
			return domain.ErrInvalidInput
		}
		if activity.IsEnded() {
			return domain.ErrActivityEnded
		}
		if len(items) != activity.Config.GuessLogo.LogoCount {
			return domain.ErrInvalidInput
		}

		for i := range items {
			if items[i].CompanyName == "" {
				return domain.ErrInvalidInput
			}
			items[i].ActivityID = id
			items[i].Index = i
		}
		return s.logoRepo.ReplaceForActivity(ctx, id, items)
	})
}

func (s *activityService) publish(ctx context.Context, event ports.LifecycleEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish lifecycle event",
			"kind", event.Kind, "activity_id", event.ActivityID, "error", err)
	}
}
