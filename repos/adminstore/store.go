package adminstore

import (
	"context"
	"encoding/json"
	"log"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
)

const (
	collection = "AdminData"
	document   = "london-titans"
	dataField  = "Data"
)

// Store persists the AdminStorage document in Firestore. The whole snapshot
// is written on every save; fixture dates travel as RFC 3339 text inside the
// JSON payload and are re-parsed on load.
type Store struct {
	Client *firestore.Client
}

// NewStore creates a store on the given Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{Client: client}
}

// Load returns the persisted snapshot, or the default storage when nothing
// has been saved yet.
func (s *Store) Load(ctx context.Context) (AdminStorage, error) {
	doc, err := s.Client.Collection(collection).Doc(document).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Default(), nil
	}
	if err != nil {
		log.Printf("Failed to get admin data from Firestore: %v\n", err)
		return AdminStorage{}, err
	}

	raw, err := doc.DataAt(dataField)
	if err != nil {
		return AdminStorage{}, err
	}
	payload, ok := raw.(string)
	if !ok {
		return AdminStorage{}, xerrors.Errorf(
			"consistency error. Admin data field %q holds %T, expected string", dataField, raw,
		)
	}

	return Decode([]byte(payload))
}

// Save replaces the persisted snapshot.
func (s *Store) Save(ctx context.Context, snapshot AdminStorage) error {
	payload, err := Encode(snapshot)
	if err != nil {
		return err
	}

	_, err = s.Client.Collection(collection).Doc(document).Set(ctx, map[string]interface{}{
		dataField: string(payload),
	})
	if err != nil {
		log.Printf("Failed to write admin data to Firestore: %v\n", err)
	}
	return err
}

// Encode serializes a snapshot to its persisted JSON form.
func Encode(snapshot AdminStorage) ([]byte, error) {
	return json.Marshal(snapshot)
}

// Decode parses the persisted JSON form. Missing collections come back
// non-nil so callers can index and append without checks.
func Decode(payload []byte) (AdminStorage, error) {
	var snapshot AdminStorage
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return AdminStorage{}, xerrors.Errorf("admin data: %w", err)
	}
	if snapshot.ManualAdditions == nil {
		snapshot.ManualAdditions = []gcal.Fixture{}
	}
	if snapshot.ManualOverrides == nil {
		snapshot.ManualOverrides = map[string]gcal.FixturePatch{}
	}
	if snapshot.ManagedOpponents == nil {
		snapshot.ManagedOpponents = []string{}
	}
	if snapshot.ManagedTeams == nil {
		snapshot.ManagedTeams = []string{}
	}
	return snapshot, nil
}
