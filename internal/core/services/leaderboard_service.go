package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type leaderboardService struct {
	activityRepo    ports.ActivityRepository
	responseRepo    ports.ResponseRepository
	participantRepo ports.ParticipantRepository
}

func NewLeaderboardService(
	activityRepo ports.ActivityRepository,
	responseRepo ports.ResponseRepository,
	participantRepo ports.ParticipantRepository,
) ports.LeaderboardService {
	return &leaderboardService{
		activityRepo:    activityRepo,
		responseRepo:    responseRepo,
		participantRepo: participantRepo,
	}
}

// Results recomputes the per-type summary from the full response set.
// Response volume is bounded per event, so no incremental state is kept.
func (s *leaderboardService) Results(ctx context.Context, activityID uuid.UUID) (*ports.ActivityResults, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	results := &ports.ActivityResults{Type: activity.Type}
	switch activity.Type {
	case domain.TypePoll:
		results.Poll = aggregatePoll(activity.Config.Poll, responses)
	case domain.TypeWordCloud:
		results.WordCloud = aggregateWordCloud(responses)
	case domain.TypeReactionSpeed:
		results.ReactionSpeed, err = s.aggregateReactionSpeed(ctx, responses)
	case domain.TypeAnonymousChat:
		results.AnonymousChat = aggregateChat(responses)
	case domain.TypeGuessLogo:
		results.GuessLogo, err = s.aggregateGuessLogo(ctx, activity, responses)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *leaderboardService) Leaderboard(ctx context.Context, activityID uuid.UUID) (*ports.GuessLogoLeaderboard, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Type != domain.TypeGuessLogo {
		return nil, domain.ErrInvalidInput
	}
	responses, err := s.responseRepo.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return s.aggregateGuessLogo(ctx, activity, responses)
}

// aggregatePoll zero-initializes counts from the configured options so an
// option nobody picked still shows up.
func aggregatePoll(cfg *domain.PollConfig, responses []*domain.Response) *ports.PollResults {
	counts := make(map[uuid.UUID]int, len(cfg.Options))
	for _, opt := range cfg.Options {
		counts[opt.ID] = 0
	}

	voters := make(map[uuid.UUID]bool)
	for _, r := range responses {
		vote := r.Data.PollVote
		if vote == nil {
			continue
		}
		voters[r.ParticipantID] = true
		for _, optID := range vote.SelectedOptionIDs {
			if _, ok := counts[optID]; ok {
				counts[optID]++
			}
		}
	}
	return &ports.PollResults{VoteCounts: counts, TotalVoters: len(voters)}
}

func aggregateWordCloud(responses []*domain.Response) *ports.WordCloudResults {
	counts := make(map[string]int)
	total := 0
	for _, r := range responses {
		sub := r.Data.WordSubmission
		if sub == nil {
			continue
		}
		total++
		counts[strings.ToLower(sub.Word)]++
	}
	return &ports.WordCloudResults{
		WordCounts:       counts,
		TotalSubmissions: total,
		UniqueWords:      len(counts),
	}
}

// aggregateReactionSpeed keeps each participant's best time across rounds
// and ranks ascending. Equal times keep submission order.
func (s *leaderboardService) aggregateReactionSpeed(ctx context.Context, responses []*domain.Response) (*ports.ReactionSpeedResults, error) {
	best := make(map[uuid.UUID]int64)
	var order []uuid.UUID
	for _, r := range responses {
		rt := r.Data.ReactionTime
		if rt == nil {
			continue
		}
		if prev, ok := best[r.ParticipantID]; !ok {
			best[r.ParticipantID] = rt.ReactionTimeMs
			order = append(order, r.ParticipantID)
		} else if rt.ReactionTimeMs < prev {
			best[r.ParticipantID] = rt.ReactionTimeMs
		}
	}

	names, err := s.participantRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}

	rankings := make([]ports.ReactionRank, 0, len(order))
	for _, id := range order {
		rankings = append(rankings, ports.ReactionRank{
			ParticipantID: id,
			Name:          names[id].Name,
			BestTimeMs:    best[id],
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].BestTimeMs < rankings[j].BestTimeMs
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return &ports.ReactionSpeedResults{Rankings: rankings}, nil
}

func aggregateChat(responses []*domain.Response) *ports.ChatResults {
	senders := make(map[uuid.UUID]bool)
	for _, r := range responses {
		if r.Data.ChatMessage != nil {
			senders[r.ParticipantID] = true
		}
	}
	return &ports.ChatResults{ParticipantCount: len(senders)}
}

// aggregateGuessLogo sums points and correct guesses per participant, then
// ranks by score descending with names ascending as the tie-break.
func (s *leaderboardService) aggregateGuessLogo(ctx context.Context, activity *domain.Activity, responses []*domain.Response) (*ports.GuessLogoLeaderboard, error) {
	type tally struct {
		score   int
		correct int
	}
	tallies := make(map[uuid.UUID]*tally)
	var order []uuid.UUID
	for _, r := range responses {
		guess := r.Data.LogoGuess
		if guess == nil {
			continue
		}
		t, ok := tallies[r.ParticipantID]
		if !ok {
			t = &tally{}
			tallies[r.ParticipantID] = t
			order = append(order, r.ParticipantID)
		}
		t.score += guess.PointsEarned
		if guess.IsCorrect {
			t.correct++
		}
	}

	names, err := s.participantRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.LeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, ports.LeaderboardEntry{
			ParticipantID: id,
			Name:          names[id].Name,
			Score:         tallies[id].score,
			CorrectCount:  tallies[id].correct,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	cfg := activity.Config.GuessLogo
	return &ports.GuessLogoLeaderboard{
		Entries:          entries,
		CurrentLogoIndex: cfg.CurrentLogoIndex,
		TotalLogos:       cfg.LogoCount,
	}, nil
}
