package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
)

type ResponseRepository interface {
	Save(ctx context.Context, response *domain.Response) error
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*domain.Response, error)
	HasPollVote(ctx context.Context, activityID, participantID uuid.UUID) (bool, error)
	CountWordSubmissions(ctx context.Context, activityID, participantID uuid.UUID) (int, error)
	// GuessAttempts returns how many guesses the participant has logged for
	// one logo and whether any of them was correct.
	GuessAttempts(ctx context.Context, activityID, participantID uuid.UUID, logoIndex int) (attempts int, solved bool, err error)
	// SolvedRounds returns the set of logo indices the participant has
	// guessed correctly, keyed by index.
	SolvedRounds(ctx context.Context, activityID, participantID uuid.UUID) (map[int]bool, error)
	DeleteByActivity(ctx context.Context, activityID uuid.UUID) error
}

type SubmitResponseInput struct {
	ActivityID    uuid.UUID
	ParticipantID uuid.UUID
	Data          domain.ResponseData
}

// GuessOutcome is the extra result payload for logo guesses. CorrectAnswer
// stays nil while the participant can still retry.
type GuessOutcome struct {
	IsCorrect         bool    `json:"is_correct"`
	IsClose           bool    `json:"is_close"`
	PointsEarned      int     `json:"points_earned"`
	CorrectAnswer     *string `json:"correct_answer,omitempty"`
	AttemptNumber     int     `json:"attempt_number"`
	CanRetry          bool    `json:"can_retry"`
	NextAttemptPoints int     `json:"next_attempt_points"`
}

type SubmitResult struct {
	Response *domain.Response `json:"response"`
	Guess    *GuessOutcome    `json:"guess,omitempty"`
}

type ResponseService interface {
	Submit(ctx context.Context, input SubmitResponseInput) (*SubmitResult, error)
}
