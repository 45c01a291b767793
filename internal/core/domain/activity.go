package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	TypePoll          ActivityType = "poll"
	TypeWordCloud     ActivityType = "word_cloud"
	TypeReactionSpeed ActivityType = "reaction_speed"
	TypeAnonymousChat ActivityType = "anonymous_chat"
	TypeGuessLogo     ActivityType = "guess_logo"
)

func (t ActivityType) Valid() bool {
	switch t {
	case TypePoll, TypeWordCloud, TypeReactionSpeed, TypeAnonymousChat, TypeGuessLogo:
		return true
	}
	return false
}

type ActivityStatus string

const (
	StatusDraft     ActivityStatus = "draft"
	StatusScheduled ActivityStatus = "scheduled"
	StatusLive      ActivityStatus = "live"
	StatusEnded     ActivityStatus = "ended"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusLive, StatusEnded:
		return true
	}
	return false
}

type Activity struct {
	ID                 uuid.UUID      `json:"id"`
	EventID            uuid.UUID      `json:"event_id"`
	Type               ActivityType   `json:"type"`
	Title              string         `json:"title"`
	Status             ActivityStatus `json:"status"`
	ScheduledStartTime *time.Time     `json:"scheduled_start_time,omitempty"`
	ActualStartTime    *time.Time     `json:"actual_start_time,omitempty"`
	EndedAt            *time.Time     `json:"ended_at,omitempty"`
	Config             ActivityConfig `json:"config"`
	CreatedAt          time.Time      `json:"created_at"`
}

func (a *Activity) IsLive() bool {
	return a.Status == StatusLive
}

func (a *Activity) IsEnded() bool {
	return a.Status == StatusEnded
}

// ActivityConfig is a closed sum over the per-type configuration variants.
// Exactly one variant matching Type must be set.
type ActivityConfig struct {
	Type          ActivityType         `json:"type"`
	Poll          *PollConfig          `json:"poll,omitempty"`
	WordCloud     *WordCloudConfig     `json:"word_cloud,omitempty"`
	ReactionSpeed *ReactionSpeedConfig `json:"reaction_speed,omitempty"`
	AnonymousChat *AnonymousChatConfig `json:"anonymous_chat,omitempty"`
	GuessLogo     *GuessLogoConfig     `json:"guess_logo,omitempty"`
}

type PollConfig struct {
	Options       []PollOption `json:"options"`
	AllowMultiple bool         `json:"allow_multiple"`
}

type PollOption struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type WordCloudConfig struct {
	MaxSubmissionsPerUser int `json:"max_submissions_per_user"`
	MaxWordLength         int `json:"max_word_length"`
}

type ReactionSpeedConfig struct {
	RoundCount int `json:"round_count"`
}

type AnonymousChatConfig struct{}

// GuessLogoConfig carries both the static game setup and the mutable round
// pointer. CurrentLogoIndex and LogoStartedAt change only through activity
// service transitions.
type GuessLogoConfig struct {
	Category         string     `json:"category"`
	LogoCount        int        `json:"logo_count"`
	TimePerLogo      int        `json:"time_per_logo"`
	Difficulty       string     `json:"difficulty"`
	ShowHints        bool       `json:"show_hints"`
	CurrentLogoIndex int        `json:"current_logo_index"`
	LogoStartedAt    *time.Time `json:"logo_started_at,omitempty"`
}

// Validate checks the config discriminant against the activity type and that
// exactly the matching variant is populated.
func (c ActivityConfig) Validate(t ActivityType) error {
	if c.Type != t {
		return ErrInvalidConfig
	}
	var want, others int
	for _, v := range []struct {
		typ ActivityType
		set bool
	}{
		{TypePoll, c.Poll != nil},
		{TypeWordCloud, c.WordCloud != nil},
		{TypeReactionSpeed, c.ReactionSpeed != nil},
		{TypeAnonymousChat, c.AnonymousChat != nil},
		{TypeGuessLogo, c.GuessLogo != nil},
	} {
		if !v.set {
			continue
		}
		if v.typ == t {
			want++
		} else {
			others++
		}
	}
	if want != 1 || others != 0 {
		return ErrInvalidConfig
	}
	if t == TypeGuessLogo {
		g := c.GuessLogo
		if g.LogoCount <= 0 || g.TimePerLogo <= 0 {
			return fmt.Errorf("%w: guess logo config requires positive logo count and time per logo", ErrInvalidConfig)
		}
	}
	return nil
}

// Value implements driver.Valuer so configs are stored as JSONB.
func (c ActivityConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for reading JSONB configs.
func (c *ActivityConfig) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value")
	}
	return json.Unmarshal(bytes, c)
}
