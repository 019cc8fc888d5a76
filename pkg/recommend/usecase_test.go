package recommend_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/backend/pkg/application"
	"github.com/jobpulse/backend/pkg/candidate"
	"github.com/jobpulse/backend/pkg/job"
	"github.com/jobpulse/backend/pkg/matching"
	"github.com/jobpulse/backend/pkg/recommend"
)

type fakeCandidates struct {
	profiles map[uuid.UUID]candidate.Profile
}

func (f *fakeCandidates) GetByID(_ context.Context, id uuid.UUID) (candidate.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return candidate.Profile{}, candidate.ErrNotFound
	}
	return p, nil
}

func (f *fakeCandidates) ListOpenExcluding(_ context.Context, exclude []uuid.UUID, limit int) ([]candidate.Profile, error) {
	excluded := map[uuid.UUID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []candidate.Profile
	for _, p := range f.profiles {
		if p.OpenToWork && !excluded[p.ID] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeJobs struct {
	postings  []job.Posting
	lastLimit int
}

func (f *fakeJobs) GetByID(_ context.Context, id int64) (job.Posting, error) {
	for _, p := range f.postings {
		if p.ID == id {
			return p, nil
		}
	}
	return job.Posting{}, job.ErrNotFound
}

func (f *fakeJobs) ListActiveExcluding(_ context.Context, exclude []int64, limit int) ([]job.Posting, error) {
	f.lastLimit = limit
	excluded := map[int64]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []job.Posting
	for _, p := range f.postings {
		if p.Active && !excluded[p.ID] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeJobs) Search(context.Context, job.SearchFilter, int64, int) ([]job.SearchRow, error) {
	return nil, nil
}
func (f *fakeJobs) IncrementViews(context.Context, int64) (uuid.UUID, error) {
	return uuid.Nil, job.ErrNotFound
}
func (f *fakeJobs) EmployerStats(context.Context, uuid.UUID) (job.EmployerStats, error) {
	return job.EmployerStats{}, nil
}

type fakeApplications struct {
	byCandidate map[uuid.UUID][]int64
	byJob       map[int64][]uuid.UUID
}

func (f *fakeApplications) Create(context.Context, uuid.UUID, int64) (application.Application, error) {
	return application.Application{}, nil
}
func (f *fakeApplications) JobIDsByCandidate(_ context.Context, id uuid.UUID) ([]int64, error) {
	return f.byCandidate[id], nil
}
func (f *fakeApplications) CandidateIDsByJob(_ context.Context, id int64) ([]uuid.UUID, error) {
	return f.byJob[id], nil
}

func newSelector(cands *fakeCandidates, jobs *fakeJobs, apps *fakeApplications, poolSize int) recommend.UseCase {
	scorer := matching.NewScorer(matching.DefaultOntology())
	return recommend.NewService(cands, jobs, apps, scorer, poolSize)
}

func posting(id int64, skills []string, level matching.Level, postedAt time.Time) job.Posting {
	return job.Posting{
		ID:             id,
		Title:          "role",
		RequiredSkills: skills,
		Level:          level,
		Active:         true,
		PostedAt:       postedAt,
	}
}

func TestJobsForCandidateExcludesAppliedJobs(t *testing.T) {
	uid := uuid.New()
	now := time.Now().UTC()
	cands := &fakeCandidates{profiles: map[uuid.UUID]candidate.Profile{
		uid: {ID: uid, Skills: []string{"Go", "PostgreSQL"}, Level: matching.LevelMid, OpenToWork: true},
	}}
	jobs := &fakeJobs{postings: []job.Posting{
		posting(1, []string{"Go", "PostgreSQL"}, matching.LevelMid, now.Add(-time.Hour)),
		posting(2, []string{"Go", "PostgreSQL"}, matching.LevelMid, now),
	}}
	apps := &fakeApplications{byCandidate: map[uuid.UUID][]int64{uid: {2}}}

	out, err := newSelector(cands, jobs, apps, 0).JobsForCandidate(context.Background(), uid, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].Job.ID, "applied job must never be recommended again")
}

func TestJobsForCandidateThresholdAndOrder(t *testing.T) {
	uid := uuid.New()
	now := time.Now().UTC()
	cands := &fakeCandidates{profiles: map[uuid.UUID]candidate.Profile{
		uid: {ID: uid, Skills: []string{"Go", "Docker"}, Level: matching.LevelMid, OpenToWork: true},
	}}
	jobs := &fakeJobs{postings: []job.Posting{
		posting(1, []string{"Go", "Docker"}, matching.LevelMid, now.Add(-2*time.Hour)),    // 100
		posting(2, []string{"Go", "Docker", "Kafka"}, matching.LevelMid, now),             // 67
		posting(3, []string{"Go", "Kafka", "Erlang", "Cobol"}, matching.LevelMid, now),    // 25, below threshold
		posting(4, []string{"Go", "Docker"}, matching.LevelMid, now.Add(-time.Hour)),      // 100, newer than posting 1
		posting(5, []string{"Go", "Docker"}, matching.LevelSenior, now.Add(-3*time.Hour)), // 80
	}}
	apps := &fakeApplications{}

	out, err := newSelector(cands, jobs, apps, 0).JobsForCandidate(context.Background(), uid, 10)
	require.NoError(t, err)

	var ids []int64
	var scores []int
	for _, sj := range out {
		ids = append(ids, sj.Job.ID)
		scores = append(scores, sj.Score)
	}
	// score descending; the two 100s tie-break on newer posting first
	assert.Equal(t, []int64{4, 1, 5, 2}, ids)
	assert.Equal(t, []int{100, 100, 80, 67}, scores)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, recommend.JobThreshold)
	}
}

func TestJobsForCandidateUnknownSubjectIsEmptyNotError(t *testing.T) {
	out, err := newSelector(&fakeCandidates{profiles: map[uuid.UUID]candidate.Profile{}}, &fakeJobs{}, &fakeApplications{}, 0).
		JobsForCandidate(context.Background(), uuid.New(), 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestJobsForCandidateLimitAndPoolCap(t *testing.T) {
	uid := uuid.New()
	now := time.Now().UTC()
	cands := &fakeCandidates{profiles: map[uuid.UUID]candidate.Profile{
		uid: {ID: uid, Skills: []string{"Go"}, Level: matching.LevelEntry, OpenToWork: true},
	}}
	var postings []job.Posting
	for i := int64(1); i <= 20; i++ {
		postings = append(postings, posting(i, []string{"Go"}, matching.LevelEntry, now.Add(-time.Duration(i)*time.Minute)))
	}
	jobs := &fakeJobs{postings: postings}

	out, err := newSelector(cands, jobs, &fakeApplications{}, 5).JobsForCandidate(context.Background(), uid, 3)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, 5, jobs.lastLimit, "pool scan must be capped")
}

func TestCandidatesForJobStricterThreshold(t *testing.T) {
	now := time.Now().UTC()
	a, b := uuid.New(), uuid.New()
	cands := &fakeCandidates{profiles: map[uuid.UUID]candidate.Profile{
		// 100: full overlap
		a: {ID: a, Skills: []string{"Go", "Docker", "Kafka"}, Level: matching.LevelMid, OpenToWork: true},
		// 67: 2 of 3 exact, passes the seeker bar but not the employer bar
		b: {ID: b, Skills: []string{"Go", "Docker"}, Level: matching.LevelMid, OpenToWork: true},
	}}
	jobs := &fakeJobs{postings: []job.Posting{
		posting(1, []string{"Go", "Docker", "Kafka"}, matching.LevelMid, now),
	}}

	out, err := newSelector(cands, jobs, &fakeApplications{}, 0).CandidatesForJob(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, a, out[0].Candidate.ID)
	assert.GreaterOrEqual(t, out[0].Score, recommend.CandidateThreshold)
}

func TestCandidatesForJobExcludesApplicants(t *testing.T) {
	now := time.Now().UTC()
	a, b := uuid.New(), uuid.New()
	cands := &fakeCandidates{profiles: map[uuid.UUID]candidate.Profile{
		a: {ID: a, Skills: []string{"Go"}, Level: matching.LevelMid, OpenToWork: true},
		b: {ID: b, Skills: []string{"Go"}, Level: matching.LevelMid, OpenToWork: true},
	}}
	jobs := &fakeJobs{postings: []job.Posting{posting(1, []string{"Go"}, matching.LevelMid, now)}}
	apps := &fakeApplications{byJob: map[int64][]uuid.UUID{1: {a}}}

	out, err := newSelector(cands, jobs, apps, 0).CandidatesForJob(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, b, out[0].Candidate.ID)
}

func TestCandidatesForJobTieBreaksOnIdentityAscending(t *testing.T) {
	now := time.Now().UTC()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	profiles := map[uuid.UUID]candidate.Profile{}
	for _, id := range ids {
		profiles[id] = candidate.Profile{ID: id, Skills: []string{"Go"}, Level: matching.LevelMid, OpenToWork: true}
	}
	cands := &fakeCandidates{profiles: profiles}
	jobs := &fakeJobs{postings: []job.Posting{posting(1, []string{"Go"}, matching.LevelMid, now)}}

	out, err := newSelector(cands, jobs, &fakeApplications{}, 0).CandidatesForJob(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		assert.Equal(t, out[i-1].Score, out[i].Score)
		assert.Less(t, out[i-1].Candidate.ID.String(), out[i].Candidate.ID.String())
	}
}

func TestCandidatesForJobUnknownSubjectIsEmptyNotError(t *testing.T) {
	out, err := newSelector(&fakeCandidates{profiles: map[uuid.UUID]candidate.Profile{}}, &fakeJobs{}, &fakeApplications{}, 0).
		CandidatesForJob(context.Background(), 404, 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
