package chat

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"apna_room_server/internal/dao/mysql"
	"apna_room_server/internal/infrastructure/email"
	"apna_room_server/internal/model"
)

func setupRepos(t *testing.T) *mysql.Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Listing{}, &model.SeekerPreferences{},
		&model.Match{}, &model.Conversation{}, &model.Message{}, &model.SavedListing{},
	))
	return mysql.NewRepositories(db)
}

// fakePresence records status writes in memory.
type fakePresence struct {
	mu     sync.Mutex
	status map[string]string
}

func newFakePresence() *fakePresence {
	return &fakePresence{status: make(map[string]string)}
}

func (f *fakePresence) SetStatus(_ context.Context, userId, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[userId] = status
	return nil
}

func (f *fakePresence) Get(_ context.Context, userId string) (PresenceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.status[userId]
	if !ok {
		s = "offline"
	}
	return PresenceRecord{Status: s}, nil
}

// recordingMailer captures outbound mail instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []email.Message
}

func (r *recordingMailer) Send(msg email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingMailer) messages() []email.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]email.Message, len(r.sent))
	copy(out, r.sent)
	return out
}

// syncTasks runs submitted actions inline so tests see their effects
// immediately.
type syncTasks struct{}

func (syncTasks) SubmitTask(action func()) { action() }

type testEnv struct {
	repos    *mysql.Repositories
	registry *Registry
	rooms    *Rooms
	presence *fakePresence
	mailer   *recordingMailer
	engine   *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := setupRepos(t)
	registry := NewRegistry()
	rooms := NewRooms()
	presence := newFakePresence()
	mailer := &recordingMailer{}
	engine := NewEngine(
		repos.Conversation, repos.Message, repos.User,
		registry, rooms, presence, mailer, syncTasks{}, "http://localhost:3000",
	)
	return &testEnv{
		repos:    repos,
		registry: registry,
		rooms:    rooms,
		presence: presence,
		mailer:   mailer,
		engine:   engine,
	}
}

func (env *testEnv) seedUser(t *testing.T, uuid, name, mail string) {
	t.Helper()
	user := &model.User{Uuid: uuid, Email: mail, FullName: name, Role: model.RoleSeeker, RawPassword: "secret123"}
	require.NoError(t, env.repos.User.Create(user))
}

func (env *testEnv) seedConversation(t *testing.T, uuid, p1, p2 string) {
	t.Helper()
	conv := &model.Conversation{Uuid: uuid, Participant1Id: p1, Participant2Id: p2}
	require.NoError(t, env.repos.Conversation.Create(conv))
}

// connect registers a session and joins its personal room, the way the
// hub does on register.
func (env *testEnv) connect(userId, name string) *Session {
	session := NewSession(userId, name, nil)
	env.registry.Add(session)
	env.rooms.Join(UserRoom(userId), session)
	return session
}

// drainOne pops a single queued frame, failing when none is buffered.
func drainOne(t *testing.T, session *Session) []byte {
	t.Helper()
	select {
	case data := <-session.Outbound():
		return data
	default:
		t.Fatal("expected a queued frame")
		return nil
	}
}

// assertEmpty verifies no frame is waiting.
func assertEmpty(t *testing.T, session *Session) {
	t.Helper()
	select {
	case data := <-session.Outbound():
		t.Fatalf("unexpected frame queued: %s", data)
	default:
	}
}
