package importer

import (
	"context"
	"strings"
	"testing"

	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/contract"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	adminEvents "eventchat-be/pkg/admin/events"
	"eventchat-be/pkg/admin/user"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

// stubUserRepo keeps accounts in memory. Only the lookups the importer
// performs are implemented; anything else panics via the embedded nil.
type stubUserRepo struct {
	contract.UserRepository
	byEmail    map[string]*entity.User
	byUsername map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail:    map[string]*entity.User{},
		byUsername: map[string]*entity.User{},
	}
}

func (r *stubUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByEmail:
			return r.byEmail[s.Email], nil
		case specification.ByUsername:
			return r.byUsername[s.Username], nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	r.byUsername[u.Username] = u
	return nil
}

type stubParticipantRepo struct {
	contract.ParticipantRepository
	created []*entity.ChatbotParticipant
}

func (r *stubParticipantRepo) Create(_ context.Context, p *entity.ChatbotParticipant) error {
	r.created = append(r.created, p)
	return nil
}

type stubUow struct {
	unitofwork.UnitOfWork
	users        *stubUserRepo
	participants *stubParticipantRepo
}

func (u *stubUow) UserRepository() contract.UserRepository { return u.users }
func (u *stubUow) ParticipantRepository() contract.ParticipantRepository {
	return u.participants
}

func newTestImporter() *Importer {
	log := nopLogger{}
	publisher := adminEvents.NewBusPublisher(nil, log)
	return NewImporter(log, user.NewManager(log, publisher), publisher)
}

const importCsv = "email,name,role\n" +
	"alice@example.test,Alice,\n" +
	"not-an-email,Bob,\n" +
	"carol@example.test,Carol,speaker\n" +
	"taken@example.test,Dave,\n"

func seededUow() *stubUow {
	uow := &stubUow{users: newStubUserRepo(), participants: &stubParticipantRepo{}}
	uow.users.byEmail["taken@example.test"] = &entity.User{
		Id:    uuid.New(),
		Email: "taken@example.test",
	}
	return uow
}

func TestImportTallies(t *testing.T) {
	uow := seededUow()
	chatbotId := uuid.New()

	result, err := newTestImporter().Import(context.Background(), uow,
		strings.NewReader(importCsv), "users.csv", &chatbotId)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
	if len(result.Errors) != 2 {
		t.Errorf("Errors = %v, want 2 entries", result.Errors)
	}

	for _, created := range result.Users {
		if created.Password == "" {
			t.Errorf("user %s has no generated password", created.User.Email)
		}
	}
	if uow.users.byUsername["alice"] == nil || uow.users.byUsername["carol"] == nil {
		t.Errorf("expected usernames derived from email local parts, got %v", result.Users)
	}
	if uow.users.byUsername["carol"].Role != entity.UserRole("speaker") {
		t.Errorf("carol role = %q, want speaker", uow.users.byUsername["carol"].Role)
	}

	if len(uow.participants.created) != 2 {
		t.Fatalf("participants created = %d, want 2", len(uow.participants.created))
	}
	for _, p := range uow.participants.created {
		if p.ChatbotId != chatbotId {
			t.Errorf("participant chatbot = %s, want %s", p.ChatbotId, chatbotId)
		}
	}
}

func TestImportWithoutChatbotSkipsEnrollment(t *testing.T) {
	uow := seededUow()

	result, err := newTestImporter().Import(context.Background(), uow,
		strings.NewReader(importCsv), "users.csv", nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if len(uow.participants.created) != 0 {
		t.Errorf("participants created = %d, want 0", len(uow.participants.created))
	}
}

func TestPreviewTallies(t *testing.T) {
	uow := seededUow()

	res, err := newTestImporter().Preview(context.Background(), uow,
		strings.NewReader(importCsv), "users.csv")
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
	if res.Valid != 2 {
		t.Errorf("Valid = %d, want 2", res.Valid)
	}
	if res.Duplicate != 1 {
		t.Errorf("Duplicate = %d, want 1", res.Duplicate)
	}
	if res.InvalidEmail != 1 {
		t.Errorf("InvalidEmail = %d, want 1", res.InvalidEmail)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}

	// Preview must not create anything.
	if len(uow.users.byUsername) != 0 {
		t.Errorf("Preview created users: %v", uow.users.byUsername)
	}
}
