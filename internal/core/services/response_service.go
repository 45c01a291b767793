package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
	"github.com/vncsmyrnk/engage/internal/core/scoring"
	"github.com/vncsmyrnk/engage/internal/observability"
)

type responseService struct {
	transactor      ports.Transactor
	activityRepo    ports.ActivityRepository
	responseRepo    ports.ResponseRepository
	logoRepo        ports.LogoRepository
	participantRepo ports.ParticipantRepository
	now             func() time.Time
}

func NewResponseService(
	transactor ports.Transactor,
	activityRepo ports.ActivityRepository,
	responseRepo ports.ResponseRepository,
	logoRepo ports.LogoRepository,
	participantRepo ports.ParticipantRepository,
) ports.ResponseService {
	return &responseService{
		transactor:      transactor,
		activityRepo:    activityRepo,
		responseRepo:    responseRepo,
		logoRepo:        logoRepo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

// Submit validates and records one participant submission. Validation and the
// insert run in a single serializable transaction, so a guess racing an
// advanceRound on the same activity is rejected as stale instead of being
// scored against the wrong round.
func (s *responseService) Submit(ctx context.Context, input ports.SubmitResponseInput) (*ports.SubmitResult, error) {
	if err := input.Data.Validate(); err != nil {
		observability.RecordResponseRejected(string(input.Data.Type), rejectionReason(err))
		return nil, err
	}

	var result *ports.SubmitResult
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		activity, err := s.activityRepo.GetByID(ctx, input.ActivityID)
		if err != nil {
			return err
		}
		participant, err := s.participantRepo.GetByID(ctx, input.ParticipantID)
		if err != nil {
			return err
		}
		if participant.EventID != activity.EventID {
			return domain.ErrUnauthorized
		}
		if !activity.IsLive() {
			return domain.ErrNotLive
		}
		if input.Data.Type != activity.Type {
			return domain.ErrInvalidInput
		}

		var outcome *ports.GuessOutcome
		switch input.Data.Type {
		case domain.TypePoll:
			err = s.validatePollVote(ctx, activity, input)
		case domain.TypeWordCloud:
			err = s.validateWordSubmission(ctx, activity, input)
		case domain.TypeReactionSpeed:
			// recorded verbatim; ranking happens at read time
		case domain.TypeAnonymousChat:
			if input.Data.ChatMessage.Text == "" {
				err = domain.ErrInvalidInput
			}
		case domain.TypeGuessLogo:
			outcome, err = s.scoreGuess(ctx, activity, input)
		}
		if err != nil {
			return err
		}

		response := &domain.Response{
			ID:            uuid.New(),
			ActivityID:    activity.ID,
			ParticipantID: participant.ID,
			Data:          input.Data,
			SubmittedAt:   s.now(),
		}
		if err := s.responseRepo.Save(ctx, response); err != nil {
			return err
		}

		result = &ports.SubmitResult{Response: response, Guess: outcome}
		return nil
	})
	if err != nil {
		observability.RecordResponseRejected(string(input.Data.Type), rejectionReason(err))
		return nil, err
	}

	observability.RecordResponseAccepted(string(input.Data.Type))
	return result, nil
}

func (s *responseService) validatePollVote(ctx context.Context, activity *domain.Activity, input ports.SubmitResponseInput) error {
	vote := input.Data.PollVote
	cfg := activity.Config.Poll

	if len(vote.SelectedOptionIDs) == 0 {
		return domain.ErrInvalidInput
	}
	if !cfg.AllowMultiple && len(vote.SelectedOptionIDs) > 1 {
		return domain.ErrInvalidInput
	}
	valid := make(map[uuid.UUID]bool, len(cfg.Options))
	for _, opt := range cfg.Options {
		valid[opt.ID] = true
	}
	for _, id := range vote.SelectedOptionIDs {
		if !valid[id] {
			return domain.ErrInvalidInput
		}
	}

	voted, err := s.responseRepo.HasPollVote(ctx, activity.ID, input.ParticipantID)
	if err != nil {
		return err
	}
	if voted {
		return domain.ErrAlreadyVoted
	}
	return nil
}

func (s *responseService) validateWordSubmission(ctx context.Context, activity *domain.Activity, input ports.SubmitResponseInput) error {
	word := input.Data.WordSubmission.Word
	cfg := activity.Config.WordCloud

	if word == "" {
		return domain.ErrInvalidInput
	}
	if cfg.MaxWordLength > 0 && len([]rune(word)) > cfg.MaxWordLength {
		return domain.ErrInvalidInput
	}

	count, err := s.responseRepo.CountWordSubmissions(ctx, activity.ID, input.ParticipantID)
	if err != nil {
		return err
	}
	if cfg.MaxSubmissionsPerUser > 0 && count >= cfg.MaxSubmissionsPerUser {
		return domain.ErrSubmissionLimitReached
	}
	return nil
}

// scoreGuess applies the guess-logo conflict rules and fills in the
// server-computed result fields on the stored guess.
func (s *responseService) scoreGuess(ctx context.Context, activity *domain.Activity, input ports.SubmitResponseInput) (*ports.GuessOutcome, error) {
	guess := input.Data.LogoGuess
	cfg := activity.Config.GuessLogo

	if guess.LogoIndex != cfg.CurrentLogoIndex {
		return nil, domain.ErrStaleRound
	}

	attempts, solved, err := s.responseRepo.GuessAttempts(ctx, activity.ID, input.ParticipantID, guess.LogoIndex)
	if err != nil {
		return nil, err
	}
	if solved {
		return nil, domain.ErrAlreadySolved
	}
	if attempts >= scoring.MaxAttempts {
		return nil, domain.ErrMaxAttemptsReached
	}

	logo, err := s.logoRepo.GetByIndex(ctx, activity.ID, guess.LogoIndex)
	if err != nil {
		return nil, err
	}

	// Server-authoritative time remaining. Expired rounds keep accepting
	// guesses until advanceRound; they just earn no time bonus.
	var timeRemainingMs int64
	if cfg.LogoStartedAt != nil {
		elapsed := s.now().Sub(*cfg.LogoStartedAt)
		timeRemainingMs = int64(cfg.TimePerLogo)*1000 - elapsed.Milliseconds()
		if timeRemainingMs < 0 {
			timeRemainingMs = 0
		}
	}

	attemptNumber := attempts + 1
	if guess.HintsUsed < 0 {
		guess.HintsUsed = 0
	}

	isCorrect := scoring.ExactMatch(guess.Guess, logo.CompanyName, logo.AlternateNames)
	isClose := false
	points := 0
	if isCorrect {
		solvedRounds, err := s.responseRepo.SolvedRounds(ctx, activity.ID, input.ParticipantID)
		if err != nil {
			return nil, err
		}
		streak := scoring.Streak(solvedRounds, cfg.CurrentLogoIndex)
		points = scoring.ComputePoints(attemptNumber, timeRemainingMs, cfg.TimePerLogo, guess.HintsUsed, streak)
	} else {
		isClose = scoring.ClosenessMatch(guess.Guess, logo.Candidates())
	}

	guess.IsCorrect = isCorrect
	guess.TimeRemainingMs = timeRemainingMs
	guess.PointsEarned = points

	outcome := &ports.GuessOutcome{
		IsCorrect:     isCorrect,
		IsClose:       isClose,
		PointsEarned:  points,
		AttemptNumber: attemptNumber,
		CanRetry:      !isCorrect && attemptNumber < scoring.MaxAttempts,
	}
	if outcome.CanRetry {
		outcome.NextAttemptPoints = scoring.BasePoints(attemptNumber + 1)
	} else {
		// the answer is only revealed once no retry is possible
		outcome.CorrectAnswer = &logo.CompanyName
	}
	return outcome, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrParticipantNotFound):
		return "participant_not_found"
	case errors.Is(err, domain.ErrLogoNotFound):
		return "logo_not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotLive):
		return "not_live"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, domain.ErrSubmissionLimitReached):
		return "submission_limit"
	case errors.Is(err, domain.ErrStaleRound):
		return "stale_round"
	case errors.Is(err, domain.ErrMaxAttemptsReached):
		return "max_attempts"
	case errors.Is(err, domain.ErrAlreadySolved):
		return "already_solved"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
