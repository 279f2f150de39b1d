package adminstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"

	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	kickOff := time.Date(2025, time.September, 13, 14, 0, 0, 0, time.UTC)
	snapshot := AdminStorage{
		ManualAdditions: []gcal.Fixture{
			{
				ID:          "manual-1",
				TeamName:    "Titans Wheeler",
				Opponent:    "Soho FC",
				IsHome:      true,
				Date:        kickOff,
				Location:    "Clapham Common",
				Competition: "Fixture",
				Status:      gcal.StatusUpcoming,
				IsManual:    true,
			},
		},
		ManualOverrides: map[string]gcal.FixturePatch{
			"remote-1": {
				Score:  pointer.String("2-1"),
				Status: (*gcal.Status)(pointer.String(string(gcal.StatusCompleted))),
			},
		},
		ManagedOpponents: []string{"Soho FC"},
		ManagedTeams:     append([]string(nil), gcal.ClubTeams...),
	}

	payload, err := Encode(snapshot)
	assert.NoError(t, err)

	reloaded, err := Decode(payload)
	assert.NoError(t, err)

	assert.Len(t, reloaded.ManualAdditions, 1)
	// Dates round-trip through their textual form without drifting.
	assert.True(t, reloaded.ManualAdditions[0].Date.Equal(kickOff))
	assert.Equal(t, snapshot.ManualAdditions[0].ID, reloaded.ManualAdditions[0].ID)
	assert.Equal(t, "2-1", *reloaded.ManualOverrides["remote-1"].Score)
	assert.Equal(t, snapshot.ManagedOpponents, reloaded.ManagedOpponents)
	assert.Equal(t, snapshot.ManagedTeams, reloaded.ManagedTeams)
}

func TestDecodeFillsMissingCollections(t *testing.T) {
	snapshot, err := Decode([]byte(`{}`))
	assert.NoError(t, err)
	assert.NotNil(t, snapshot.ManualAdditions)
	assert.NotNil(t, snapshot.ManualOverrides)
	assert.NotNil(t, snapshot.ManagedOpponents)
	assert.NotNil(t, snapshot.ManagedTeams)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDefaultSeedsClubTeams(t *testing.T) {
	snapshot := Default()
	assert.Equal(t, gcal.ClubTeams, snapshot.ManagedTeams)
	assert.Empty(t, snapshot.ManualAdditions)
	assert.Empty(t, snapshot.ManualOverrides)
}
