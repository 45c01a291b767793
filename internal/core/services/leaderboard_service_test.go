package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type boardFixture struct {
	svc          *leaderboardService
	activityRepo *memActivityRepo
	responseRepo *memResponseRepo
	participants *memParticipantRepo
}

func newBoardFixture(participants ...domain.Participant) *boardFixture {
	f := &boardFixture{
		activityRepo: newMemActivityRepo(),
		responseRepo: &memResponseRepo{},
		participants: newMemParticipantRepo(participants...),
	}
	f.svc = &leaderboardService{
		activityRepo:    f.activityRepo,
		responseRepo:    f.responseRepo,
		participantRepo: f.participants,
	}
	return f
}

func (f *boardFixture) store(t *testing.T, activity *domain.Activity) {
	t.Helper()
	require.NoError(t, f.activityRepo.Create(context.Background(), activity))
}

func (f *boardFixture) respond(t *testing.T, activityID, participantID uuid.UUID, data domain.ResponseData) {
	t.Helper()
	require.NoError(t, f.responseRepo.Save(context.Background(), &domain.Response{
		ID:            uuid.New(),
		ActivityID:    activityID,
		ParticipantID: participantID,
		Data:          data,
		SubmittedAt:   time.Now(),
	}))
}

func TestPollResultsZeroInitialized(t *testing.T) {
	f := newBoardFixture()
	yes, no, never := uuid.New(), uuid.New(), uuid.New()
	activity := &domain.Activity{
		ID:      uuid.New(),
		EventID: uuid.New(),
		Type:    domain.TypePoll,
		Title:   "Keynote good?",
		Status:  domain.StatusLive,
		Config: domain.ActivityConfig{
			Type: domain.TypePoll,
			Poll: &domain.PollConfig{Options: []domain.PollOption{
				{ID: yes, Text: "Yes"}, {ID: no, Text: "No"}, {ID: never, Text: "Never"},
			}},
		},
	}
	f.store(t, activity)

	p1, p2 := uuid.New(), uuid.New()
	f.respond(t, activity.ID, p1, domain.ResponseData{
		Type: domain.TypePoll, PollVote: &domain.PollVote{SelectedOptionIDs: []uuid.UUID{yes}},
	})
	f.respond(t, activity.ID, p2, domain.ResponseData{
		Type: domain.TypePoll, PollVote: &domain.PollVote{SelectedOptionIDs: []uuid.UUID{no}},
	})

	results, err := f.svc.Results(context.Background(), activity.ID)
	require.NoError(t, err)
	require.NotNil(t, results.Poll)
	assert.Equal(t, domain.TypePoll, results.Type)
	assert.Equal(t, 1, results.Poll.VoteCounts[yes])
	assert.Equal(t, 1, results.Poll.VoteCounts[no])
	assert.Contains(t, results.Poll.VoteCounts, never, "untouched option still present")
	assert.Equal(t, 0, results.Poll.VoteCounts[never])
	assert.Equal(t, 2, results.Poll.TotalVoters)

	// single-choice poll: counts sum to voters
	sum := 0
	for _, c := range results.Poll.VoteCounts {
		sum += c
	}
	assert.Equal(t, results.Poll.TotalVoters, sum)
}

func TestWordCloudResultsFoldCase(t *testing.T) {
	f := newBoardFixture()
	activity := &domain.Activity{
		ID:     uuid.New(),
		Type:   domain.TypeWordCloud,
		Status: domain.StatusLive,
		Config: domain.ActivityConfig{
			Type:      domain.TypeWordCloud,
			WordCloud: &domain.WordCloudConfig{MaxSubmissionsPerUser: 5, MaxWordLength: 20},
		},
	}
	f.store(t, activity)

	p := uuid.New()
	for _, word := range []string{"Energy", "energy", "ENERGY", "flow"} {
		f.respond(t, activity.ID, p, domain.ResponseData{
			Type: domain.TypeWordCloud, WordSubmission: &domain.WordSubmission{Word: word},
		})
	}

	results, err := f.svc.Results(context.Background(), activity.ID)
	require.NoError(t, err)
	require.NotNil(t, results.WordCloud)
	assert.Equal(t, 3, results.WordCloud.WordCounts["energy"])
	assert.Equal(t, 1, results.WordCloud.WordCounts["flow"])
	assert.Equal(t, 4, results.WordCloud.TotalSubmissions)
	assert.Equal(t, 2, results.WordCloud.UniqueWords)
}

func TestReactionSpeedRanksBestTimeAscending(t *testing.T) {
	fast := domain.Participant{ID: uuid.New(), Name: "Fast"}
	slow := domain.Participant{ID: uuid.New(), Name: "Slow"}
	f := newBoardFixture(fast, slow)

	activity := &domain.Activity{
		ID:     uuid.New(),
		Type:   domain.TypeReactionSpeed,
		Status: domain.StatusLive,
		Config: domain.ActivityConfig{
			Type:          domain.TypeReactionSpeed,
			ReactionSpeed: &domain.ReactionSpeedConfig{RoundCount: 3},
		},
	}
	f.store(t, activity)

	// slow posts first but fast's best time wins
	f.respond(t, activity.ID, slow.ID, domain.ResponseData{
		Type: domain.TypeReactionSpeed, ReactionTime: &domain.ReactionTime{RoundNumber: 1, ReactionTimeMs: 480},
	})
	f.respond(t, activity.ID, fast.ID, domain.ResponseData{
		Type: domain.TypeReactionSpeed, ReactionTime: &domain.ReactionTime{RoundNumber: 1, ReactionTimeMs: 350},
	})
	f.respond(t, activity.ID, fast.ID, domain.ResponseData{
		Type: domain.TypeReactionSpeed, ReactionTime: &domain.ReactionTime{RoundNumber: 2, ReactionTimeMs: 290},
	})

	results, err := f.svc.Results(context.Background(), activity.ID)
	require.NoError(t, err)
	require.NotNil(t, results.ReactionSpeed)
	rankings := results.ReactionSpeed.Rankings
	require.Len(t, rankings, 2)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, "Fast", rankings[0].Name)
	assert.Equal(t, int64(290), rankings[0].BestTimeMs)
	assert.Equal(t, 2, rankings[1].Rank)
	assert.Equal(t, int64(480), rankings[1].BestTimeMs)
}

func TestChatResultsExposeOnlyParticipantCount(t *testing.T) {
	f := newBoardFixture()
	activity := &domain.Activity{
		ID:     uuid.New(),
		Type:   domain.TypeAnonymousChat,
		Status: domain.StatusLive,
		Config: domain.ActivityConfig{
			Type:          domain.TypeAnonymousChat,
			AnonymousChat: &domain.AnonymousChatConfig{},
		},
	}
	f.store(t, activity)

	p1, p2 := uuid.New(), uuid.New()
	for _, pid := range []uuid.UUID{p1, p1, p2} {
		f.respond(t, activity.ID, pid, domain.ResponseData{
			Type: domain.TypeAnonymousChat, ChatMessage: &domain.ChatMessage{Text: "hi"},
		})
	}

	results, err := f.svc.Results(context.Background(), activity.ID)
	require.NoError(t, err)
	require.NotNil(t, results.AnonymousChat)
	assert.Equal(t, 2, results.AnonymousChat.ParticipantCount)
}

func TestGuessLogoLeaderboardOrdering(t *testing.T) {
	ada := domain.Participant{ID: uuid.New(), Name: "Ada"}
	bob := domain.Participant{ID: uuid.New(), Name: "Bob"}
	zoe := domain.Participant{ID: uuid.New(), Name: "Zoe"}
	f := newBoardFixture(ada, bob, zoe)

	activity := &domain.Activity{
		ID:     uuid.New(),
		Type:   domain.TypeGuessLogo,
		Status: domain.StatusLive,
		Config: domain.ActivityConfig{
			Type: domain.TypeGuessLogo,
			GuessLogo: &domain.GuessLogoConfig{
				LogoCount: 5, TimePerLogo: 30, CurrentLogoIndex: 2,
			},
		},
	}
	f.store(t, activity)

	guess := func(pid uuid.UUID, index, points int, correct bool) {
		f.respond(t, activity.ID, pid, domain.ResponseData{
			Type: domain.TypeGuessLogo,
			LogoGuess: &domain.LogoGuess{
				LogoIndex: index, Guess: "x", IsCorrect: correct, PointsEarned: points,
			},
		})
	}

	guess(zoe.ID, 0, 150, true)
	guess(zoe.ID, 1, 0, false)
	guess(ada.ID, 0, 100, true)
	guess(ada.ID, 1, 40, true)
	guess(bob.ID, 0, 150, true)

	board, err := f.svc.Leaderboard(context.Background(), activity.ID)
	require.NoError(t, err)
	require.Len(t, board.Entries, 3)

	// zoe and bob tie at 150: name breaks the tie ascending
	assert.Equal(t, []string{"Bob", "Zoe", "Ada"}, []string{
		board.Entries[0].Name, board.Entries[1].Name, board.Entries[2].Name,
	})
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, 2, board.Entries[1].Rank)
	assert.Equal(t, 3, board.Entries[2].Rank)
	assert.Equal(t, 2, board.Entries[2].CorrectCount)
	assert.Equal(t, 2, board.CurrentLogoIndex)
	assert.Equal(t, 5, board.TotalLogos)
}

func TestLeaderboardRejectsNonGuessLogo(t *testing.T) {
	f := newBoardFixture()
	activity := &domain.Activity{
		ID:     uuid.New(),
		Type:   domain.TypePoll,
		Status: domain.StatusLive,
		Config: domain.ActivityConfig{
			Type: domain.TypePoll,
			Poll: &domain.PollConfig{Options: []domain.PollOption{{ID: uuid.New(), Text: "A"}}},
		},
	}
	f.store(t, activity)

	_, err := f.svc.Leaderboard(context.Background(), activity.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

var _ ports.LeaderboardService = (*leaderboardService)(nil)
