package chat

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"apna_room_server/internal/infrastructure/email"
	"apna_room_server/internal/model"
)

const (
	aliceId = "U-alice-00000000001"
	bobId   = "U-bob-0000000000001"
	eveId   = "U-eve-0000000000001"
	convId  = "C-thread-0000000001"
)

func decodeFrame(t *testing.T, data []byte) (string, json.RawMessage) {
	t.Helper()
	var frame struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame.Type, frame.Payload
}

func TestSendMessageToOfflineRecipient(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	sessA := env.connect(aliceId, "Alice")
	env.rooms.Join(ConversationRoom(convId), sessA)

	env.engine.HandleSendMessage(context.Background(), sessA, aliceId, SendMessagePayload{
		ConversationId: convId,
		Content:        "hey, is the room still available?",
	})

	// Persisted, and the conversation recency is bumped.
	messages, err := env.repos.Message.FindByConversationId(convId)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, aliceId, messages[0].SenderId)
	require.Equal(t, model.MessageText, messages[0].Type)

	// Recency carries the persisted row's timestamp, not a fresh clock
	// read.
	conv, err := env.repos.Conversation.FindByUuid(convId)
	require.NoError(t, err)
	require.True(t, conv.LastMessageAt.Valid)
	require.True(t, conv.LastMessageAt.Time.Equal(messages[0].CreatedAt))

	// The sender sits in the conversation room and sees the broadcast.
	eventType, payload := decodeFrame(t, drainOne(t, sessA))
	require.Equal(t, EventNewMessage, eventType)
	var msg MessagePayload
	require.NoError(t, json.Unmarshal(payload, &msg))
	require.Equal(t, "Alice", msg.SenderName)
	require.NotEmpty(t, msg.Id)
	require.True(t, msg.Timestamp.Equal(messages[0].CreatedAt))
	assertEmpty(t, sessA)

	// Bob is offline, so the notification email goes out.
	sent := env.mailer.messages()
	require.Len(t, sent, 1)
	require.Equal(t, "bob@test.dev", sent[0].To)
	require.Equal(t, email.TemplateNewMessage, sent[0].Template)
	require.Equal(t, "hey, is the room still available?", sent[0].Data["preview"])
}

func TestSendMessageToOnlineRecipient(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	sessA := env.connect(aliceId, "Alice")
	sessB := env.connect(bobId, "Bob")
	env.rooms.Join(ConversationRoom(convId), sessA)

	env.engine.HandleSendMessage(context.Background(), sessA, aliceId, SendMessagePayload{
		ConversationId: convId,
		Content:        "ping",
	})

	// Bob is not in the conversation room but gets the personal-room
	// notification; no email since he is connected.
	eventType, payload := decodeFrame(t, drainOne(t, sessB))
	require.Equal(t, EventNewMessageNotification, eventType)
	var note NotificationPayload
	require.NoError(t, json.Unmarshal(payload, &note))
	require.Equal(t, convId, note.ConversationId)
	require.Equal(t, "Alice", note.SenderName)
	require.Equal(t, "ping", note.Content)
	require.False(t, note.Timestamp.IsZero())

	require.Empty(t, env.mailer.messages())
}

func TestNotificationPreviewTruncation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	sessA := env.connect(aliceId, "Alice")
	sessB := env.connect(bobId, "Bob")

	long := strings.Repeat("héllo ", 20) // 120 runes, multibyte
	env.engine.HandleSendMessage(context.Background(), sessA, aliceId, SendMessagePayload{
		ConversationId: convId,
		Content:        long,
	})

	_, payload := decodeFrame(t, drainOne(t, sessB))
	var note NotificationPayload
	require.NoError(t, json.Unmarshal(payload, &note))
	require.True(t, strings.HasSuffix(note.Content, "..."))
	require.Equal(t, 50, len([]rune(strings.TrimSuffix(note.Content, "..."))))
}

func TestSendMessageRejectsOutsider(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedUser(t, eveId, "Eve", "eve@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	sessE := env.connect(eveId, "Eve")

	env.engine.HandleSendMessage(context.Background(), sessE, eveId, SendMessagePayload{
		ConversationId: convId,
		Content:        "let me in",
	})

	eventType, _ := decodeFrame(t, drainOne(t, sessE))
	require.Equal(t, EventError, eventType)

	messages, err := env.repos.Message.FindByConversationId(convId)
	require.NoError(t, err)
	require.Empty(t, messages, "nothing persisted for outsiders")
}

func TestMarkAsReadBroadcastExcludesCaller(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	sessA := env.connect(aliceId, "Alice")
	sessB := env.connect(bobId, "Bob")
	env.rooms.Join(ConversationRoom(convId), sessA)
	env.rooms.Join(ConversationRoom(convId), sessB)

	env.engine.HandleSendMessage(context.Background(), sessA, aliceId, SendMessagePayload{
		ConversationId: convId,
		Content:        "unread",
	})
	drainOne(t, sessA) // newMessage broadcast
	drainOne(t, sessB) // newMessage broadcast
	drainOne(t, sessB) // personal notification

	env.engine.HandleMarkAsRead(sessB, bobId, MarkAsReadPayload{ConversationId: convId})

	eventType, payload := decodeFrame(t, drainOne(t, sessA))
	require.Equal(t, EventMessagesRead, eventType)
	var receipt MessagesReadPayload
	require.NoError(t, json.Unmarshal(payload, &receipt))
	require.Equal(t, bobId, receipt.ReadBy)
	require.False(t, receipt.Timestamp.IsZero())
	assertEmpty(t, sessB)

	messages, err := env.repos.Message.FindByConversationId(convId)
	require.NoError(t, err)
	require.True(t, messages[0].Read)

	// Marking again changes nothing but still broadcasts.
	env.engine.HandleMarkAsRead(sessB, bobId, MarkAsReadPayload{ConversationId: convId})
	eventType, _ = decodeFrame(t, drainOne(t, sessA))
	require.Equal(t, EventMessagesRead, eventType)
}

func TestMarkAsReadIgnoresForeignIds(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedUser(t, eveId, "Eve", "eve@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)
	env.seedConversation(t, "C-other-000000000001", aliceId, eveId)

	sessA := env.connect(aliceId, "Alice")
	env.engine.HandleSendMessage(context.Background(), sessA, aliceId, SendMessagePayload{
		ConversationId: "C-other-000000000001",
		Content:        "different thread",
	})

	other, err := env.repos.Message.FindByConversationId("C-other-000000000001")
	require.NoError(t, err)
	require.Len(t, other, 1)

	// Bob marks that id against his own conversation; the scoped
	// update leaves the foreign row untouched.
	sessB := env.connect(bobId, "Bob")
	env.engine.HandleMarkAsRead(sessB, bobId, MarkAsReadPayload{
		ConversationId: convId,
		MessageIds:     []string{strconv.FormatInt(other[0].Uuid, 10)},
	})

	other, err = env.repos.Message.FindByConversationId("C-other-000000000001")
	require.NoError(t, err)
	require.False(t, other[0].Read)
}

func TestTypingRelayExcludesSender(t *testing.T) {
	env := newTestEnv(t)
	sessA := env.connect(aliceId, "Alice")
	sessB := env.connect(bobId, "Bob")
	env.rooms.Join(ConversationRoom(convId), sessA)
	env.rooms.Join(ConversationRoom(convId), sessB)

	env.engine.HandleTyping(sessA, aliceId, TypingPayload{ConversationId: convId, IsTyping: true})

	eventType, payload := decodeFrame(t, drainOne(t, sessB))
	require.Equal(t, EventUserTyping, eventType)
	var indicator UserTypingPayload
	require.NoError(t, json.Unmarshal(payload, &indicator))
	require.Equal(t, aliceId, indicator.UserId)
	require.Equal(t, "Alice", indicator.UserName)
	require.True(t, indicator.IsTyping)
	assertEmpty(t, sessA)
}

func TestTypingNameResolvedWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	sessB := env.connect(bobId, "Bob")
	env.rooms.Join(ConversationRoom(convId), sessB)

	// Events relayed from another process carry no local session; the
	// name comes from the user row instead.
	env.engine.HandleTyping(nil, aliceId, TypingPayload{ConversationId: convId, IsTyping: true})

	_, payload := decodeFrame(t, drainOne(t, sessB))
	var indicator UserTypingPayload
	require.NoError(t, json.Unmarshal(payload, &indicator))
	require.Equal(t, "Alice", indicator.UserName)
}

func TestJoinConversationRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, aliceId, "Alice", "alice@test.dev")
	env.seedUser(t, bobId, "Bob", "bob@test.dev")
	env.seedUser(t, eveId, "Eve", "eve@test.dev")
	env.seedConversation(t, convId, aliceId, bobId)

	sessA := env.connect(aliceId, "Alice")
	sessE := env.connect(eveId, "Eve")

	env.engine.HandleJoinConversation(sessA, aliceId, JoinConversationPayload{ConversationId: convId})
	require.True(t, env.rooms.Contains(ConversationRoom(convId), sessA))

	env.engine.HandleJoinConversation(sessE, eveId, JoinConversationPayload{ConversationId: convId})
	require.False(t, env.rooms.Contains(ConversationRoom(convId), sessE))
	eventType, _ := decodeFrame(t, drainOne(t, sessE))
	require.Equal(t, EventError, eventType)
}

func TestUpdateStatusBroadcastAndPersist(t *testing.T) {
	env := newTestEnv(t)
	sessA := env.connect(aliceId, "Alice")
	sessB := env.connect(bobId, "Bob")

	env.engine.HandleUpdateStatus(context.Background(), sessA, aliceId, UpdateStatusPayload{Status: "away"})

	record, err := env.presence.Get(context.Background(), aliceId)
	require.NoError(t, err)
	require.Equal(t, "away", record.Status)

	eventType, payload := decodeFrame(t, drainOne(t, sessB))
	require.Equal(t, EventUserStatusUpdate, eventType)
	var update StatusPayload
	require.NoError(t, json.Unmarshal(payload, &update))
	require.Equal(t, "away", update.Status)
	assertEmpty(t, sessA)
}
