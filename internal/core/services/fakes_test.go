package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

// in-memory port implementations for service tests

type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memActivityRepo struct {
	mu         sync.Mutex
	activities map[uuid.UUID]*domain.Activity
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{activities: make(map[uuid.UUID]*domain.Activity)}
}

// cloneActivity deep-copies through JSON so tests observe only what Update
// persisted, like a real store.
func cloneActivity(a *domain.Activity) *domain.Activity {
	raw, _ := json.Marshal(a)
	var out domain.Activity
	_ = json.Unmarshal(raw, &out)
	return &out
}

func (r *memActivityRepo) Create(_ context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[activity.ID] = cloneActivity(activity)
	return nil
}

func (r *memActivityRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	return cloneActivity(activity), nil
}

func (r *memActivityRepo) ListByEvent(_ context.Context, eventID uuid.UUID) ([]*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Activity
	for _, a := range r.activities {
		if a.EventID == eventID {
			out = append(out, cloneActivity(a))
		}
	}
	return out, nil
}

func (r *memActivityRepo) Update(_ context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[activity.ID]; !ok {
		return domain.ErrActivityNotFound
	}
	r.activities[activity.ID] = cloneActivity(activity)
	return nil
}

func (r *memActivityRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.activities, id)
	return nil
}

type memResponseRepo struct {
	mu        sync.Mutex
	responses []*domain.Response
}

func (r *memResponseRepo) Save(_ context.Context, response *domain.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response)
	return nil
}

func (r *memResponseRepo) ListByActivity(_ context.Context, activityID uuid.UUID) ([]*domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Response
	for _, resp := range r.responses {
		if resp.ActivityID == activityID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *memResponseRepo) HasPollVote(_ context.Context, activityID, participantID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ActivityID == activityID && resp.ParticipantID == participantID && resp.Data.PollVote != nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *memResponseRepo) CountWordSubmissions(_ context.Context, activityID, participantID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, resp := range r.responses {
		if resp.ActivityID == activityID && resp.ParticipantID == participantID && resp.Data.WordSubmission != nil {
			count++
		}
	}
	return count, nil
}

func (r *memResponseRepo) GuessAttempts(_ context.Context, activityID, participantID uuid.UUID, logoIndex int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempts, solved := 0, false
	for _, resp := range r.responses {
		guess := resp.Data.LogoGuess
		if resp.ActivityID != activityID || resp.ParticipantID != participantID || guess == nil || guess.LogoIndex != logoIndex {
			continue
		}
		attempts++
		if guess.IsCorrect {
			solved = true
		}
	}
	return attempts, solved, nil
}

func (r *memResponseRepo) SolvedRounds(_ context.Context, activityID, participantID uuid.UUID) (map[int]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	solved := make(map[int]bool)
	for _, resp := range r.responses {
		guess := resp.Data.LogoGuess
		if resp.ActivityID == activityID && resp.ParticipantID == participantID && guess != nil && guess.IsCorrect {
			solved[guess.LogoIndex] = true
		}
	}
	return solved, nil
}

func (r *memResponseRepo) DeleteByActivity(_ context.Context, activityID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.responses[:0]
	for _, resp := range r.responses {
		if resp.ActivityID != activityID {
			kept = append(kept, resp)
		}
	}
	r.responses = kept
	return nil
}

type memLogoRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID][]domain.LogoItem
}

func newMemLogoRepo() *memLogoRepo {
	return &memLogoRepo{items: make(map[uuid.UUID][]domain.LogoItem)}
}

func (r *memLogoRepo) ReplaceForActivity(_ context.Context, activityID uuid.UUID, items []domain.LogoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[activityID] = append([]domain.LogoItem(nil), items...)
	return nil
}

func (r *memLogoRepo) GetByIndex(_ context.Context, activityID uuid.UUID, index int) (*domain.LogoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items[activityID] {
		if item.Index == index {
			out := item
			return &out, nil
		}
	}
	return nil, domain.ErrLogoNotFound
}

func (r *memLogoRepo) ListByActivity(_ context.Context, activityID uuid.UUID) ([]domain.LogoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LogoItem(nil), r.items[activityID]...), nil
}

func (r *memLogoRepo) DeleteByActivity(_ context.Context, activityID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, activityID)
	return nil
}

type rosterKey struct {
	activityID    uuid.UUID
	participantID uuid.UUID
}

type memRosterRepo struct {
	mu   sync.Mutex
	rows map[rosterKey]*domain.ActivityParticipant
}

func newMemRosterRepo() *memRosterRepo {
	return &memRosterRepo{rows: make(map[rosterKey]*domain.ActivityParticipant)}
}

func (r *memRosterRepo) Get(_ context.Context, activityID, participantID uuid.UUID) (*domain.ActivityParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[rosterKey{activityID, participantID}]
	if !ok {
		return nil, nil
	}
	out := *row
	return &out, nil
}

func (r *memRosterRepo) Insert(_ context.Context, row *domain.ActivityParticipant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rosterKey{row.ActivityID, row.ParticipantID}] = row
	return nil
}

func (r *memRosterRepo) DeleteByActivity(_ context.Context, activityID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.rows {
		if key.activityID == activityID {
			delete(r.rows, key)
		}
	}
	return nil
}

type memParticipantRepo struct {
	participants map[uuid.UUID]domain.Participant
}

func newMemParticipantRepo(participants ...domain.Participant) *memParticipantRepo {
	repo := &memParticipantRepo{participants: make(map[uuid.UUID]domain.Participant)}
	for _, p := range participants {
		repo.participants[p.ID] = p
	}
	return repo
}

func (r *memParticipantRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Participant, error) {
	p, ok := r.participants[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return &p, nil
}

func (r *memParticipantRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Participant, error) {
	out := make(map[uuid.UUID]domain.Participant, len(ids))
	for _, id := range ids {
		if p, ok := r.participants[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func createGuessLogoInput(eventID uuid.UUID, logoCount, timePerLogo int) ports.CreateActivityInput {
	return ports.CreateActivityInput{
		EventID: eventID,
		Type:    domain.TypeGuessLogo,
		Title:   "Logo quiz",
		Config:  guessLogoConfig(logoCount, timePerLogo),
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.LifecycleEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.LifecycleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
