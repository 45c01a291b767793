package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoundView is the synchronization contract for a guess-logo round. A client
// derives its countdown from its clock offset against ServerTime, never from
// its own wall clock, so TimeRemaining only ever shrinks between polls.
type RoundView struct {
	Index         int       `json:"index"`
	LogoURL       string    `json:"logo_url"`
	Hints         []string  `json:"hints,omitempty"`
	TotalLogos    int       `json:"total_logos"`
	TimePerLogo   int       `json:"time_per_logo"`
	LogoStartedAt time.Time `json:"logo_started_at"`
	ServerTime    time.Time `json:"server_time"`
	TimeRemaining int       `json:"time_remaining"`
}

type RoundService interface {
	CurrentRound(ctx context.Context, activityID uuid.UUID) (*RoundView, error)
}
