package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is the directory view of an attendee: enough to check event
// membership and render leaderboard names.
type Participant struct {
	ID      uuid.UUID `json:"id"`
	EventID uuid.UUID `json:"event_id"`
	Name    string    `json:"name"`
}

// ActivityParticipant is one roster row for a guess-logo activity. At most
// one row exists per (activity, participant) pair.
type ActivityParticipant struct {
	ActivityID    uuid.UUID `json:"activity_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	JoinedAt      time.Time `json:"joined_at"`
}
