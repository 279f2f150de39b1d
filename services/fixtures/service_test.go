package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"

	adminstore "github.com/londontitans/fixtures-sync/repos/adminstore"
	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
)

type fakeFeed struct {
	fixtures []gcal.Fixture
	err      error
}

func (f fakeFeed) FetchFixtures(ctx context.Context) ([]gcal.Fixture, error) {
	return f.fixtures, f.err
}

type fakeStorage struct {
	data adminstore.AdminStorage
	err  error
}

func (f fakeStorage) Load(ctx context.Context) (adminstore.AdminStorage, error) {
	return f.data, f.err
}

var baseDate = time.Date(2025, time.September, 6, 14, 0, 0, 0, time.UTC)

func remoteFixture(id string, offset time.Duration) gcal.Fixture {
	return gcal.Fixture{
		ID:          id,
		TeamName:    "Titans Wheeler",
		Opponent:    "Spartans",
		IsHome:      true,
		Date:        baseDate.Add(offset),
		Location:    "TBC",
		Competition: "Fixture",
		Status:      gcal.StatusUpcoming,
	}
}

func TestRefreshAppliesOverridePatch(t *testing.T) {
	feed := fakeFeed{fixtures: []gcal.Fixture{remoteFixture("remote-1", 0)}}
	store := fakeStorage{data: adminstore.AdminStorage{
		ManualOverrides: map[string]gcal.FixturePatch{
			"remote-1": {
				Location: pointer.String("Clapham Common"),
				Score:    pointer.String("1-0"),
			},
		},
	}}

	fixtures, err := NewFixturesService(feed, store).Refresh(context.Background())
	assert.NoError(t, err)
	assert.Len(t, fixtures, 1)

	patched := fixtures[0]
	assert.Equal(t, "remote-1", patched.ID)
	assert.Equal(t, "Clapham Common", patched.Location)
	assert.Equal(t, "1-0", patched.Score)
	// Fields absent from the patch keep their fetched values.
	assert.Equal(t, "Spartans", patched.Opponent)
	assert.True(t, patched.IsOverridden)
	assert.False(t, patched.IsManual)
}

func TestRefreshAppendsManualAdditions(t *testing.T) {
	manual := remoteFixture("manual-1", -48*time.Hour)
	feed := fakeFeed{fixtures: []gcal.Fixture{remoteFixture("remote-1", 0)}}
	store := fakeStorage{data: adminstore.AdminStorage{
		ManualAdditions: []gcal.Fixture{manual},
	}}

	fixtures, err := NewFixturesService(feed, store).Refresh(context.Background())
	assert.NoError(t, err)
	assert.Len(t, fixtures, 2)
	assert.Equal(t, "manual-1", fixtures[0].ID)
	assert.True(t, fixtures[0].IsManual)
	assert.False(t, fixtures[1].IsManual)
}

func TestRefreshSortsAscendingByDate(t *testing.T) {
	feed := fakeFeed{fixtures: []gcal.Fixture{
		remoteFixture("c", 72*time.Hour),
		remoteFixture("a", -24*time.Hour),
		remoteFixture("b", 24*time.Hour),
	}}

	fixtures, err := NewFixturesService(feed, fakeStorage{data: adminstore.Default()}).Refresh(context.Background())
	assert.NoError(t, err)
	for i := 1; i < len(fixtures); i++ {
		assert.False(t, fixtures[i].Date.Before(fixtures[i-1].Date))
	}
	assert.Equal(t, "a", fixtures[0].ID)
	assert.Equal(t, "c", fixtures[2].ID)
}

func TestRefreshPropagatesFeedFailure(t *testing.T) {
	feed := fakeFeed{err: gcal.ErrFeedUnavailable}
	store := fakeStorage{data: adminstore.AdminStorage{
		ManualAdditions: []gcal.Fixture{remoteFixture("manual-1", 0)},
	}}

	fixtures, err := NewFixturesService(feed, store).Refresh(context.Background())
	assert.ErrorIs(t, err, gcal.ErrFeedUnavailable)
	// No partial list: manual additions must not mask the failure.
	assert.Nil(t, fixtures)
}

func TestRefreshKeepsEveryFixtureWhenOverrideIdMatchesAnother(t *testing.T) {
	feed := fakeFeed{fixtures: []gcal.Fixture{
		remoteFixture("remote-1", 0),
		remoteFixture("remote-2", time.Hour),
	}}
	store := fakeStorage{data: adminstore.AdminStorage{
		ManualOverrides: map[string]gcal.FixturePatch{
			"remote-2": {Opponent: pointer.String("Renamed FC")},
		},
	}}

	fixtures, err := NewFixturesService(feed, store).Refresh(context.Background())
	assert.NoError(t, err)
	assert.Len(t, fixtures, 2)
	assert.Equal(t, "Spartans", fixtures[0].Opponent)
	assert.Equal(t, "Renamed FC", fixtures[1].Opponent)
}

func TestAdminSnapshotReturnsStorage(t *testing.T) {
	store := fakeStorage{data: adminstore.Default()}
	snapshot, err := NewFixturesService(fakeFeed{}, store).AdminSnapshot(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, gcal.ClubTeams, snapshot.ManagedTeams)
}
