package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Response is an append-only record of one participant submission. Rows are
// never updated; they disappear only when their activity is removed.
type Response struct {
	ID            uuid.UUID    `json:"id"`
	ActivityID    uuid.UUID    `json:"activity_id"`
	ParticipantID uuid.UUID    `json:"participant_id"`
	Data          ResponseData `json:"data"`
	SubmittedAt   time.Time    `json:"submitted_at"`
}

// ResponseData is a closed sum over the per-type submission variants,
// mirroring ActivityConfig.
type ResponseData struct {
	Type           ActivityType    `json:"type"`
	PollVote       *PollVote       `json:"poll_vote,omitempty"`
	WordSubmission *WordSubmission `json:"word_submission,omitempty"`
	ReactionTime   *ReactionTime   `json:"reaction_time,omitempty"`
	ChatMessage    *ChatMessage    `json:"chat_message,omitempty"`
	LogoGuess      *LogoGuess      `json:"logo_guess,omitempty"`
}

type PollVote struct {
	SelectedOptionIDs []uuid.UUID `json:"selected_option_ids"`
}

type WordSubmission struct {
	Word string `json:"word"`
}

type ReactionTime struct {
	RoundNumber    int   `json:"round_number"`
	ReactionTimeMs int64 `json:"reaction_time_ms"`
}

type ChatMessage struct {
	Text string `json:"text"`
}

// LogoGuess stores the participant's raw guess plus the server-computed
// outcome fields. HintsUsed is reported by the client with the guess; the
// remaining result fields are filled in by the ledger before insertion.
type LogoGuess struct {
	LogoIndex       int    `json:"logo_index"`
	Guess           string `json:"guess"`
	HintsUsed       int    `json:"hints_used,omitempty"`
	IsCorrect       bool   `json:"is_correct"`
	TimeRemainingMs int64  `json:"time_remaining_ms"`
	PointsEarned    int    `json:"points_earned"`
}

// Validate checks the discriminant and that exactly the matching variant is
// populated, so the ledger can switch exhaustively without nil checks.
func (d ResponseData) Validate() error {
	var want, others int
	for _, v := range []struct {
		typ ActivityType
		set bool
	}{
		{TypePoll, d.PollVote != nil},
		{TypeWordCloud, d.WordSubmission != nil},
		{TypeReactionSpeed, d.ReactionTime != nil},
		{TypeAnonymousChat, d.ChatMessage != nil},
		{TypeGuessLogo, d.LogoGuess != nil},
	} {
		if !v.set {
			continue
		}
		if v.typ == d.Type {
			want++
		} else {
			others++
		}
	}
	if !d.Type.Valid() || want != 1 || others != 0 {
		return ErrInvalidInput
	}
	return nil
}

// Value implements driver.Valuer so response data is stored as JSONB.
func (d ResponseData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading JSONB response data.
func (d *ResponseData) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value")
	}
	return json.Unmarshal(bytes, d)
}
