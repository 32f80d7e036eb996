package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryData struct {
	store     map[string][]byte
	saveCalls int
}

func newMemoryData() *memoryData {
	return &memoryData{store: map[string][]byte{}}
}

func (m *memoryData) Save(_ context.Context, key string, value []byte) error {
	m.saveCalls++
	m.store[key] = value
	return nil
}

func (m *memoryData) Load(_ context.Context, key string) ([]byte, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (m *memoryData) Remove(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func digestDataset() []models.Job {
	return []models.Job{
		{ID: 1, Title: "Frontend Engineer", Company: "Acme", Location: "Bangalore",
			Experience: "Mid", PostedDaysAgo: 1, Source: "LinkedIn", ApplyURL: "https://acme.test/1"},
		{ID: 2, Title: "Frontend Developer", Company: "Globex", Location: "Pune",
			Experience: "Mid", PostedDaysAgo: 0, Source: "LinkedIn", ApplyURL: "https://globex.test/2"},
		{ID: 3, Title: "Backend Engineer", Company: "Initech", Location: "Pune",
			Experience: "Senior", PostedDaysAgo: 4, Source: "Indeed", ApplyURL: "https://initech.test/3"},
	}
}

func newTestDigestService(data dataRepository, size int, date time.Time) *DigestService {
	svc := NewDigestService(EventBus.New(), data, size)
	svc.now = func() time.Time { return date }
	return svc
}

func Test_GetOrCreate_GeneratesTopMatchesSortedByScore(t *testing.T) {

	svc := newTestDigestService(newMemoryData(), 10, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	prefs := models.Preferences{RoleKeywords: "frontend", MinMatchScore: 20}

	digest, err := svc.GetOrCreate(context.Background(), &prefs, digestDataset())

	require.NoError(t, err)
	require.NotNil(t, digest)
	assert.Equal(t, "2025-06-01", digest.Date)
	// jobs 1 and 2 score 35, job 3 scores 0 and is below threshold;
	// the 35/35 tie breaks on ascending posting age
	require.Len(t, digest.Jobs, 2)
	assert.Equal(t, 2, digest.Jobs[0].ID)
	assert.Equal(t, 1, digest.Jobs[1].ID)
}

func Test_GetOrCreate_RetainsOnlyTopN(t *testing.T) {

	svc := newTestDigestService(newMemoryData(), 1, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	prefs := models.Preferences{RoleKeywords: "frontend", MinMatchScore: 0}

	digest, err := svc.GetOrCreate(context.Background(), &prefs, digestDataset())

	require.NoError(t, err)
	require.NotNil(t, digest)
	require.Len(t, digest.Jobs, 1)
	assert.Equal(t, 2, digest.Jobs[0].ID)
}

func Test_GetOrCreate_IsIdempotentPerDate(t *testing.T) {

	data := newMemoryData()
	svc := newTestDigestService(data, 10, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	prefs := models.Preferences{RoleKeywords: "frontend", MinMatchScore: 20}

	first, err := svc.GetOrCreate(context.Background(), &prefs, digestDataset())
	require.NoError(t, err)
	require.NotNil(t, first)

	drifted := models.Preferences{RoleKeywords: "backend", MinMatchScore: 0}
	second, err := svc.GetOrCreate(context.Background(), &drifted, digestDataset())
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, first.Jobs, second.Jobs)
	assert.Equal(t, 1, data.saveCalls)
}

func Test_GetOrCreate_SurvivesRestartWithoutRecomputation(t *testing.T) {

	data := newMemoryData()
	date := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	prefs := models.Preferences{RoleKeywords: "frontend", MinMatchScore: 20}

	first, err := newTestDigestService(data, 10, date).GetOrCreate(context.Background(), &prefs, digestDataset())
	require.NoError(t, err)

	// a fresh service shares only the persisted store, not the memory cache
	second, err := newTestDigestService(data, 10, date).GetOrCreate(context.Background(), &prefs, nil)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.Jobs, second.Jobs)
	assert.Equal(t, 1, data.saveCalls)
}

func Test_GetOrCreate_WithoutPreferences_LeavesDateAbsent(t *testing.T) {

	data := newMemoryData()
	svc := newTestDigestService(data, 10, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	digest, err := svc.GetOrCreate(context.Background(), nil, digestDataset())
	require.NoError(t, err)
	assert.Nil(t, digest)
	assert.Zero(t, data.saveCalls)

	absent, err := svc.Get(context.Background(), svc.Today())
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func Test_Get_DistinguishesAbsentFromEmptyDigest(t *testing.T) {

	svc := newTestDigestService(newMemoryData(), 10, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	absent, err := svc.Get(context.Background(), "2024-12-31")
	require.NoError(t, err)
	assert.Nil(t, absent)

	// threshold above every score yields a generated-but-empty digest
	prefs := models.Preferences{MinMatchScore: 100}
	generated, err := svc.GetOrCreate(context.Background(), &prefs, digestDataset())
	require.NoError(t, err)
	require.NotNil(t, generated)
	assert.Empty(t, generated.Jobs)

	reread, err := svc.Get(context.Background(), "2025-06-01")
	require.NoError(t, err)
	require.NotNil(t, reread)
	assert.Empty(t, reread.Jobs)
}

func Test_Get_CorruptStoredDigestIsTreatedAsAbsent(t *testing.T) {

	data := newMemoryData()
	data.store["digest:2025-06-01"] = []byte("{not json")

	svc := newTestDigestService(data, 10, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	digest, err := svc.Get(context.Background(), "2025-06-01")
	require.NoError(t, err)
	assert.Nil(t, digest)
}

func Test_Invalidate_AllowsRegeneration(t *testing.T) {

	data := newMemoryData()
	svc := newTestDigestService(data, 10, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	prefs := models.Preferences{RoleKeywords: "frontend", MinMatchScore: 20}
	first, err := svc.GetOrCreate(context.Background(), &prefs, digestDataset())
	require.NoError(t, err)
	require.Len(t, first.Jobs, 2)

	require.NoError(t, svc.Invalidate(context.Background(), "2025-06-01"))

	drifted := models.Preferences{RoleKeywords: "backend", MinMatchScore: 20}
	second, err := svc.GetOrCreate(context.Background(), &drifted, digestDataset())
	require.NoError(t, err)
	require.Len(t, second.Jobs, 1)
	assert.Equal(t, 3, second.Jobs[0].ID)
}

func Test_GetOrCreate_PublishesDigestGeneratedEvent(t *testing.T) {

	bus := EventBus.New()
	svc := NewDigestService(bus, newMemoryData(), 10)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

	var received *events.DigestGenerated
	err := bus.Subscribe(events.DigestGeneratedTopic, func(event events.DigestGenerated) {
		received = &event
	})
	require.NoError(t, err)

	prefs := models.Preferences{RoleKeywords: "frontend", MinMatchScore: 20}
	_, err = svc.GetOrCreate(context.Background(), &prefs, digestDataset())
	require.NoError(t, err)

	require.NotNil(t, received)
	assert.Equal(t, "2025-06-01", received.Digest.Date)
	assert.Len(t, received.Digest.Jobs, 2)
}

func Test_RenderText_IsStableSerialization(t *testing.T) {

	score := 85
	digest := models.Digest{
		Date: "2025-06-01",
		Jobs: []models.ScoredJob{
			{
				Job: models.Job{Title: "Frontend Engineer", Company: "Acme", Location: "Bangalore",
					Experience: "Mid", ApplyURL: "https://acme.test/1"},
				MatchScore: &score,
			},
		},
	}

	expected := "Job Digest\n" +
		"Sunday, 1 June 2025\n" +
		"Frontend Engineer at Acme (Bangalore, Mid) — 85% — https://acme.test/1\n"

	assert.Equal(t, expected, RenderText(digest))
}
