package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
)

// ActivityResults is a closed sum of per-type summaries, recomputed from the
// full response set on every read.
type ActivityResults struct {
	Type          domain.ActivityType   `json:"type"`
	Poll          *PollResults          `json:"poll,omitempty"`
	WordCloud     *WordCloudResults     `json:"word_cloud,omitempty"`
	ReactionSpeed *ReactionSpeedResults `json:"reaction_speed,omitempty"`
	AnonymousChat *ChatResults          `json:"anonymous_chat,omitempty"`
	GuessLogo     *GuessLogoLeaderboard `json:"guess_logo,omitempty"`
}

type PollResults struct {
	VoteCounts  map[uuid.UUID]int `json:"vote_counts"`
	TotalVoters int               `json:"total_voters"`
}

type WordCloudResults struct {
	WordCounts       map[string]int `json:"word_counts"`
	TotalSubmissions int            `json:"total_submissions"`
	UniqueWords      int            `json:"unique_words"`
}

type ReactionSpeedResults struct {
	Rankings []ReactionRank `json:"rankings"`
}

type ReactionRank struct {
	Rank          int       `json:"rank"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Name          string    `json:"name"`
	BestTimeMs    int64     `json:"best_time_ms"`
}

// ChatResults exposes participation only; message content never leaves the
// ledger through this read path.
type ChatResults struct {
	ParticipantCount int `json:"participant_count"`
}

type GuessLogoLeaderboard struct {
	Entries          []LeaderboardEntry `json:"entries"`
	CurrentLogoIndex int                `json:"current_logo_index"`
	TotalLogos       int                `json:"total_logos"`
}

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Name          string    `json:"name"`
	Score         int       `json:"score"`
	CorrectCount  int       `json:"correct_count"`
}

type LeaderboardService interface {
	Results(ctx context.Context, activityID uuid.UUID) (*ActivityResults, error)
	Leaderboard(ctx context.Context, activityID uuid.UUID) (*GuessLogoLeaderboard, error)
}
