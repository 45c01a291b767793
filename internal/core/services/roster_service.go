package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type rosterService struct {
	transactor      ports.Transactor
	activityRepo    ports.ActivityRepository
	rosterRepo      ports.RosterRepository
	participantRepo ports.ParticipantRepository
	now             func() time.Time
}

func NewRosterService(
	transactor ports.Transactor,
	activityRepo ports.ActivityRepository,
	rosterRepo ports.RosterRepository,
	participantRepo ports.ParticipantRepository,
) ports.RosterService {
	return &rosterService{
		transactor:      transactor,
		activityRepo:    activityRepo,
		rosterRepo:      rosterRepo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

func (s *rosterService) CanJoin(ctx context.Context, activityID uuid.UUID) (ports.CanJoinResult, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if errors.Is(err, domain.ErrActivityNotFound) {
		return ports.CanJoinResult{CanJoin: false, Reason: "not_found"}, nil
	}
	if err != nil {
		return ports.CanJoinResult{}, err
	}
	if activity.IsEnded() {
		return ports.CanJoinResult{CanJoin: false, Reason: "ended"}, nil
	}
	return ports.CanJoinResult{CanJoin: true}, nil
}

// Join is idempotent: the second call for the same pair reports
// alreadyJoined and leaves the single roster row untouched.
func (s *rosterService) Join(ctx context.Context, activityID, participantID uuid.UUID) (ports.JoinResult, error) {
	var result ports.JoinResult
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		activity, err := s.activityRepo.GetByID(ctx, activityID)
		if err != nil {
			return err
		}
		if activity.IsEnded() {
			return domain.ErrActivityEnded
		}

		participant, err := s.participantRepo.GetByID(ctx, participantID)
		if err != nil {
			return err
		}
		if participant.EventID != activity.EventID {
			return domain.ErrUnauthorized
		}

		existing, err := s.rosterRepo.Get(ctx, activityID, participantID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = ports.JoinResult{AlreadyJoined: true, JoinedAt: existing.JoinedAt}
			return nil
		}

		row := &domain.ActivityParticipant{
			ActivityID:    activityID,
			ParticipantID: participantID,
			JoinedAt:      s.now(),
		}
		if err := s.rosterRepo.Insert(ctx, row); err != nil {
			return err
		}
		result = ports.JoinResult{AlreadyJoined: false, JoinedAt: row.JoinedAt}
		return nil
	})
	if err != nil {
		return ports.JoinResult{}, err
	}
	return result, nil
}
