package adminstore

import (
	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
)

// AdminStorage is the manually maintained schedule state: complete fixtures
// with no remote counterpart, per-fixture override patches keyed by fixture
// id, and the team/opponent name lists the admin panel offers as choices.
type AdminStorage struct {
	ManualAdditions  []gcal.Fixture               `json:"manualAdditions"`
	ManualOverrides  map[string]gcal.FixturePatch `json:"manualOverrides"`
	ManagedOpponents []string                     `json:"managedOpponents"`
	ManagedTeams     []string                     `json:"managedTeams"`
}

// Default is the storage used before anything has been persisted. The team
// list starts out with the club's own sides.
func Default() AdminStorage {
	return AdminStorage{
		ManualAdditions:  []gcal.Fixture{},
		ManualOverrides:  map[string]gcal.FixturePatch{},
		ManagedOpponents: []string{},
		ManagedTeams:     append([]string(nil), gcal.ClubTeams...),
	}
}
