package admin

import (
	"context"
	"errors"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	auth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/samborkent/uuidv7"

	access "github.com/londontitans/fixtures-sync/pkg/accessCode"
	adminstore "github.com/londontitans/fixtures-sync/repos/adminstore"
	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
	resend "github.com/londontitans/fixtures-sync/repos/resend"
)

var (
	ErrUnknownFixture   = errors.New("unknown fixture id")
	ErrInvalidAccessKey = errors.New("not valid access code")
)

const accessDocID = "london-titans"

// Storage is the persisted admin snapshot. Every mutation loads the current
// snapshot, changes it and saves it back in full.
type Storage interface {
	Load(ctx context.Context) (adminstore.AdminStorage, error)
	Save(ctx context.Context, snapshot adminstore.AdminStorage) error
}

// Mailer delivers admin access mail and records access grants.
type Mailer interface {
	SendAccessMail(ctx context.Context, email, accessCode string) error
	GrantAccess(ctx context.Context, uid string) error
}

type AdminService struct {
	store           Storage
	firestoreClient *firestore.Client
	mailer          Mailer
}

func NewAdminService(store Storage, firestoreClient *firestore.Client, mailer Mailer) *AdminService {
	return &AdminService{
		store:           store,
		firestoreClient: firestoreClient,
		mailer:          mailer,
	}
}

// UpsertManualFixture adds or replaces a manual addition. New fixtures get a
// generated id.
func (s *AdminService) UpsertManualFixture(ctx context.Context, fixture gcal.Fixture) (gcal.Fixture, error) {
	if fixture.ID == "" {
		fixture.ID = uuidv7.New().String()
	}
	fixture.IsManual = true

	data, err := s.store.Load(ctx)
	if err != nil {
		return gcal.Fixture{}, err
	}

	replaced := false
	for i, existing := range data.ManualAdditions {
		if existing.ID == fixture.ID {
			data.ManualAdditions[i] = fixture
			replaced = true
			break
		}
	}
	if !replaced {
		data.ManualAdditions = append(data.ManualAdditions, fixture)
	}

	if err := s.store.Save(ctx, data); err != nil {
		return gcal.Fixture{}, err
	}
	return fixture, nil
}

// DeleteManualFixture removes a manual addition by id.
func (s *AdminService) DeleteManualFixture(ctx context.Context, id string) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := make([]gcal.Fixture, 0, len(data.ManualAdditions))
	found := false
	for _, fixture := range data.ManualAdditions {
		if fixture.ID == id {
			found = true
			continue
		}
		kept = append(kept, fixture)
	}
	if !found {
		return ErrUnknownFixture
	}
	data.ManualAdditions = kept

	return s.store.Save(ctx, data)
}

// SetOverride stores the patch applied on top of the fetched fixture with
// the given id.
func (s *AdminService) SetOverride(ctx context.Context, id string, patch gcal.FixturePatch) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if data.ManualOverrides == nil {
		data.ManualOverrides = map[string]gcal.FixturePatch{}
	}
	data.ManualOverrides[id] = patch

	return s.store.Save(ctx, data)
}

// ClearOverride drops the patch for the given fixture id.
func (s *AdminService) ClearOverride(ctx context.Context, id string) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := data.ManualOverrides[id]; !ok {
		return ErrUnknownFixture
	}
	delete(data.ManualOverrides, id)

	return s.store.Save(ctx, data)
}

// UpdateManagedLists replaces the team and opponent name lists offered by the
// admin panel. A nil list leaves the stored one untouched.
func (s *AdminService) UpdateManagedLists(ctx context.Context, teams, opponents []string) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if teams != nil {
		data.ManagedTeams = teams
	}
	if opponents != nil {
		data.ManagedOpponents = opponents
	}

	return s.store.Save(ctx, data)
}

// Preview classifies a hypothetical calendar event without touching the
// feed, so an admin can check how a summary will parse before putting it in
// the calendar.
func (s *AdminService) Preview(summary, description string) gcal.Fixture {
	event := gcal.RawEvent{
		"UID":         "preview",
		"SUMMARY":     summary,
		"DESCRIPTION": description,
	}
	now := time.Now()
	return gcal.MapEventToFixture(event, now, now)
}

// ClaimAccess mails an admin access link to the given address and records
// the caller's grant.
func (s *AdminService) ClaimAccess(c *gin.Context, request resend.AccessRequest) error {
	token := c.MustGet("token").(*auth.Token)

	secret, err := s.accessSecret(c)
	if err != nil {
		return err
	}

	code := access.GenerateCode(accessDocID, secret)
	if err := s.mailer.SendAccessMail(c, request.Email, code); err != nil {
		return err
	}

	return s.mailer.GrantAccess(c, token.UID)
}

// RedeemAccess grants admin access to the caller when the presented code
// carries the club secret.
func (s *AdminService) RedeemAccess(c *gin.Context, code string) error {
	token := c.MustGet("token").(*auth.Token)

	clubID, secret, err := access.Decode(code)
	if err != nil {
		return ErrInvalidAccessKey
	}

	stored, err := s.accessSecret(c)
	if err != nil {
		return err
	}
	if clubID != accessDocID || secret != stored {
		return ErrInvalidAccessKey
	}

	return s.mailer.GrantAccess(c, token.UID)
}

func (s *AdminService) accessSecret(ctx context.Context) (string, error) {
	doc, err := s.firestoreClient.Collection("AdminAccess").Doc(accessDocID).Get(ctx)
	if err != nil {
		log.Printf("Failed to get admin access doc from Firestore: %v\n", err)
		return "", err
	}

	raw, err := doc.DataAt("Secret")
	if err != nil {
		return "", err
	}
	secret, ok := raw.(string)
	if !ok {
		log.Printf("Failed to convert access secret to string.")
		return "", ErrInvalidAccessKey
	}
	return secret, nil
}
