package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"career-advisor/internal/domain/profile"
	"career-advisor/internal/domain/reference"
	"career-advisor/internal/domain/user"
	"career-advisor/internal/pkg/ordered"
	"career-advisor/internal/repository"
)

var errDB = errors.New("db down")

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func testDataset(t *testing.T) *reference.Dataset {
	t.Helper()
	ds, err := reference.New([]reference.Career{
		{
			Path: "Software Development",
			Jobs: []reference.Job{{
				Title:    "Software Developer",
				Keywords: []string{"python", "git"},
				Skills:   []string{"sql"},
			}},
			TechnicalSkills: ordered.Map[int]{{Key: "programming", Value: 5}},
			SoftSkills:      ordered.Map[int]{{Key: "problem_solving", Value: 4}},
		},
		{
			Path:            "Graphic Design",
			TechnicalSkills: ordered.Map[int]{{Key: "design", Value: 5}},
		},
	}, []reference.MarketEntry{
		{
			CareerPath:     "Software Development",
			DemandScore:    9.0,
			SalaryRange:    reference.SalaryRange{Min: 70000, Max: 150000, Average: 110000},
			TopLocations:   []string{"Remote"},
			TrendingSkills: []string{"Go"},
			JobOutlook:     "Strong",
		},
		{CareerPath: "Graphic Design", DemandScore: 6.0},
	})
	require.NoError(t, err)
	return ds
}

type fakeUsers struct {
	byID  map[uuid.UUID]user.User
	err   error
	names int
}

func newFakeUsers(users ...user.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]user.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u user.User) error {
	if f.err != nil {
		return f.err
	}
	u.CreatedAt, u.UpdatedAt = fixedNow, fixedNow
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUsers) UpdateName(_ context.Context, id uuid.UUID, first, last string) error {
	u := f.byID[id]
	u.FirstName, u.LastName = first, last
	f.byID[id] = u
	f.names++
	return nil
}

type fakeProfiles struct {
	byUser map[uuid.UUID]profile.Profile
	err    error
}

func newFakeProfiles(ps ...profile.Profile) *fakeProfiles {
	f := &fakeProfiles{byUser: map[uuid.UUID]profile.Profile{}}
	for _, p := range ps {
		f.byUser[p.UserID] = p
	}
	return f
}

func (f *fakeProfiles) Get(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	if f.err != nil {
		return profile.Profile{}, f.err
	}
	p, ok := f.byUser[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p profile.Profile) error {
	if f.err != nil {
		return f.err
	}
	f.byUser[p.UserID] = p
	return nil
}

func (f *fakeProfiles) SetResume(_ context.Context, userID uuid.UUID, resume string) error {
	if f.err != nil {
		return f.err
	}
	p := f.byUser[userID]
	p.UserID = userID
	p.Resume = resume
	f.byUser[userID] = p
	return nil
}

// latestStore keeps records per user in insertion order.
type latestStore[T any] struct {
	items map[uuid.UUID][]T
	err   error
}

func (s *latestStore[T]) add(userID uuid.UUID, v T) {
	if s.items == nil {
		s.items = map[uuid.UUID][]T{}
	}
	s.items[userID] = append(s.items[userID], v)
}

func (s *latestStore[T]) latest(userID uuid.UUID) (T, error) {
	var zero T
	if s.err != nil {
		return zero, s.err
	}
	list := s.items[userID]
	if len(list) == 0 {
		return zero, repository.ErrNotFound
	}
	return list[len(list)-1], nil
}

type fakeAssessments struct {
	latestStore[repository.AssessmentRecord]
}

func (f *fakeAssessments) Create(_ context.Context, rec repository.AssessmentRecord) (repository.AssessmentRecord, error) {
	if f.err != nil {
		return repository.AssessmentRecord{}, f.err
	}
	rec.ID, rec.CreatedAt = uuid.New(), fixedNow
	f.add(rec.UserID, rec)
	return rec, nil
}

func (f *fakeAssessments) Latest(_ context.Context, userID uuid.UUID) (repository.AssessmentRecord, error) {
	return f.latest(userID)
}

type fakeCareerPaths struct {
	latestStore[repository.CareerPathRecord]
}

func (f *fakeCareerPaths) Create(_ context.Context, rec repository.CareerPathRecord) (repository.CareerPathRecord, error) {
	if f.err != nil {
		return repository.CareerPathRecord{}, f.err
	}
	rec.ID, rec.CreatedAt = uuid.New(), fixedNow
	f.add(rec.UserID, rec)
	return rec, nil
}

func (f *fakeCareerPaths) Latest(_ context.Context, userID uuid.UUID) (repository.CareerPathRecord, error) {
	return f.latest(userID)
}

type fakeInsights struct {
	latestStore[repository.MarketInsightRecord]
	creates int
}

func (f *fakeInsights) GetOrCreate(_ context.Context, rec repository.MarketInsightRecord) (repository.MarketInsightRecord, error) {
	if f.err != nil {
		return repository.MarketInsightRecord{}, f.err
	}
	for _, existing := range f.items[rec.UserID] {
		if existing.Industry == rec.Industry {
			return existing, nil
		}
	}
	rec.ID, rec.CreatedAt = uuid.New(), fixedNow
	f.add(rec.UserID, rec)
	f.creates++
	return rec, nil
}

func (f *fakeInsights) ListRecent(_ context.Context, userID uuid.UUID, limit int) ([]repository.MarketInsightRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	list := f.items[userID]
	out := make([]repository.MarketInsightRecord, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

type fakeAnalyses struct {
	latestStore[repository.ResumeAnalysisRecord]
}

func (f *fakeAnalyses) Create(_ context.Context, rec repository.ResumeAnalysisRecord) (repository.ResumeAnalysisRecord, error) {
	if f.err != nil {
		return repository.ResumeAnalysisRecord{}, f.err
	}
	rec.ID, rec.CreatedAt = uuid.New(), fixedNow
	f.add(rec.UserID, rec)
	return rec, nil
}

func (f *fakeAnalyses) Latest(_ context.Context, userID uuid.UUID) (repository.ResumeAnalysisRecord, error) {
	return f.latest(userID)
}

type fakePreps struct {
	latestStore[repository.InterviewPrepRecord]
	listLimit, listOffset int
}

func (f *fakePreps) Create(_ context.Context, rec repository.InterviewPrepRecord) (repository.InterviewPrepRecord, error) {
	if f.err != nil {
		return repository.InterviewPrepRecord{}, f.err
	}
	rec.ID, rec.CreatedAt = uuid.New(), fixedNow
	f.add(rec.UserID, rec)
	return rec, nil
}

func (f *fakePreps) Get(_ context.Context, userID, id uuid.UUID) (repository.InterviewPrepRecord, error) {
	if f.err != nil {
		return repository.InterviewPrepRecord{}, f.err
	}
	for _, rec := range f.items[userID] {
		if rec.ID == id {
			return rec, nil
		}
	}
	return repository.InterviewPrepRecord{}, repository.ErrNotFound
}

func (f *fakePreps) List(_ context.Context, userID uuid.UUID, limit, offset int) ([]repository.InterviewPrepRecord, error) {
	f.listLimit, f.listOffset = limit, offset
	if f.err != nil {
		return nil, f.err
	}
	return f.items[userID], nil
}

// memCache is an AnalysisCache backed by a map.
type memCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

type sentEvent struct {
	UserID  uuid.UUID
	Event   string
	Payload any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) Notify(userID uuid.UUID, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{UserID: userID, Event: event, Payload: payload})
}

func fullAssessmentInput() AssessmentInput {
	return AssessmentInput{
		TechnicalSkills: map[string]int{"programming": 5, "data_analysis": 1, "design": 1, "writing": 1, "project_management": 1},
		SoftSkills:      map[string]int{"communication": 3, "teamwork": 3, "leadership": 3, "problem_solving": 4, "adaptability": 3},
		Interests:       map[string]int{"technology": 1, "business": 1, "arts": 1, "sciences": 1, "helping_others": 1},
	}
}
