package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// waitFrame blocks for a queued frame, since the hub loop runs on its
// own goroutine in these tests.
func waitFrame(t *testing.T, session *Session) []byte {
	t.Helper()
	select {
	case data := <-session.Outbound():
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return nil
	}
}

// waitOnline blocks until the hub has processed a registration, using
// the presence write as the landing signal.
func waitOnline(t *testing.T, env *testEnv, userId string) {
	t.Helper()
	require.Eventually(t, func() bool {
		record, _ := env.presence.Get(context.Background(), userId)
		return record.Status == "online"
	}, 2*time.Second, 10*time.Millisecond)
}

func startHub(t *testing.T, env *testEnv) (*Hub, *ChannelBroker) {
	t.Helper()
	broker := NewChannelBroker()
	hub := NewHub(env.registry, env.rooms, env.engine, broker, env.presence)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Stopped()
	})
	return hub, broker
}

func publish(t *testing.T, broker *ChannelBroker, userId, eventType string, payload any) {
	t.Helper()
	data, err := json.Marshal(ClientEvent{Type: eventType, Payload: mustRaw(t, payload)})
	require.NoError(t, err)
	require.NoError(t, broker.Publish(context.Background(), Envelope{UserId: userId, Event: data}))
}

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHubDeliversPublishedEvents(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	hub, broker := startHub(t, env)

	sessA := NewSession(aliceId, "Alice", nil)
	sessB := NewSession(bobId, "Bob", nil)
	hub.Register(sessA)
	hub.Register(sessB)
	waitOnline(t, env, aliceId)
	waitOnline(t, env, bobId)

	publish(t, broker, aliceId, EventJoinConversation, JoinConversationPayload{ConversationId: convId})
	publish(t, broker, aliceId, EventSendMessage, SendMessagePayload{ConversationId: convId, Content: "hello"})

	// Alice joined the room and sees the broadcast; Bob gets the
	// personal-room notification.
	eventType, _ := decodeFrame(t, waitFrame(t, sessA))
	require.Equal(t, EventNewMessage, eventType)

	eventType, payload := decodeFrame(t, waitFrame(t, sessB))
	require.Equal(t, EventNewMessageNotification, eventType)
	var note NotificationPayload
	require.NoError(t, json.Unmarshal(payload, &note))
	require.Equal(t, "hello", note.Content)
}

func TestHubDisconnectAfterSendKeepsMessage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	hub, broker := startHub(t, env)

	sessA := NewSession(aliceId, "Alice", nil)
	hub.Register(sessA)
	waitOnline(t, env, aliceId)

	// A message in flight while its sender disconnects still lands; the
	// loop handles both events to completion, in whichever order they
	// arrive.
	publish(t, broker, aliceId, EventSendMessage, SendMessagePayload{ConversationId: convId, Content: "leaving now"})
	hub.Unregister(sessA)

	require.Eventually(t, func() bool {
		record, _ := env.presence.Get(context.Background(), aliceId)
		return record.Status == "offline"
	}, 2*time.Second, 10*time.Millisecond)
	require.Nil(t, env.registry.Get(aliceId))

	require.Eventually(t, func() bool {
		messages, err := env.repos.Message.FindByConversationId(convId)
		return err == nil && len(messages) == 1 && messages[0].Content == "leaving now"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubMalformedEventReportsToSender(t *testing.T) {
	env := newTestEnv(t)
	hub, broker := startHub(t, env)

	sess := NewSession(aliceId, "Alice", nil)
	hub.Register(sess)
	waitOnline(t, env, aliceId)

	require.NoError(t, broker.Publish(context.Background(), Envelope{
		UserId: aliceId,
		Event:  []byte(`{"type":"shutdown"}`),
	}))

	eventType, _ := decodeFrame(t, waitFrame(t, sess))
	require.Equal(t, EventError, eventType)
}

func TestHubUnregisterAnnouncesOffline(t *testing.T) {
	env := newTestEnv(t)
	hub, _ := startHub(t, env)

	sessA := NewSession(aliceId, "Alice", nil)
	sessB := NewSession(bobId, "Bob", nil)
	hub.Register(sessA)
	hub.Register(sessB)
	waitOnline(t, env, aliceId)
	waitOnline(t, env, bobId)

	hub.Unregister(sessA)

	eventType, payload := decodeFrame(t, waitFrame(t, sessB))
	require.Equal(t, EventUserOffline, eventType)
	var gone StatusPayload
	require.NoError(t, json.Unmarshal(payload, &gone))
	require.Equal(t, aliceId, gone.UserId)

	require.Eventually(t, func() bool {
		record, _ := env.presence.Get(context.Background(), aliceId)
		return record.Status == "offline"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubReplacedSessionDoesNotGoOffline(t *testing.T) {
	env := newTestEnv(t)
	hub, _ := startHub(t, env)

	stale := NewSession(aliceId, "Alice", nil)
	fresh := NewSession(aliceId, "Alice", nil)
	observer := NewSession(bobId, "Bob", nil)
	hub.Register(stale)
	hub.Register(fresh)
	hub.Register(observer)
	// Registrations land in order, so the observer going online means
	// both of Alice's connections were processed.
	waitOnline(t, env, bobId)

	// The stale connection's read pump reports its own death. The user
	// still holds the fresh connection, so nobody hears offline.
	hub.Unregister(stale)

	require.Never(t, func() bool {
		select {
		case <-observer.Outbound():
			return true
		default:
			return false
		}
	}, 300*time.Millisecond, 20*time.Millisecond)

	record, err := env.presence.Get(context.Background(), aliceId)
	require.NoError(t, err)
	require.Equal(t, "online", record.Status, "the fresh connection keeps the user online")
}
