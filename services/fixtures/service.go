package fixtures

import (
	"context"
	"sort"

	adminstore "github.com/londontitans/fixtures-sync/repos/adminstore"
	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
)

// Feed delivers the classified remote schedule.
type Feed interface {
	FetchFixtures(ctx context.Context) ([]gcal.Fixture, error)
}

// Storage reads the persisted admin snapshot.
type Storage interface {
	Load(ctx context.Context) (adminstore.AdminStorage, error)
}

type FixturesService struct {
	feed  Feed
	store Storage
}

func NewFixturesService(feed Feed, store Storage) *FixturesService {
	return &FixturesService{
		feed:  feed,
		store: store,
	}
}

// Refresh produces the canonical fixture list: the fetched schedule with any
// override patch applied per id, followed by all manual additions, sorted
// ascending by date. A fetch failure propagates; no partial list is returned
// in its place.
func (s *FixturesService) Refresh(ctx context.Context) ([]gcal.Fixture, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	fetched, err := s.feed.FetchFixtures(ctx)
	if err != nil {
		return nil, err
	}

	merged := make([]gcal.Fixture, 0, len(fetched)+len(data.ManualAdditions))
	for _, fixture := range fetched {
		if patch, ok := data.ManualOverrides[fixture.ID]; ok {
			id := fixture.ID
			fixture = patch.Apply(fixture)
			fixture.ID = id
			fixture.IsOverridden = true
		}
		merged = append(merged, fixture)
	}

	for _, manual := range data.ManualAdditions {
		manual.IsManual = true
		merged = append(merged, manual)
	}

	// Stable so fixtures on the same instant keep their arrival order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	return merged, nil
}

// AdminSnapshot returns the current admin storage, defaulted when nothing
// has been persisted yet.
func (s *FixturesService) AdminSnapshot(ctx context.Context) (adminstore.AdminStorage, error) {
	return s.store.Load(ctx)
}
