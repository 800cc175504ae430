package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLastConnectWins(t *testing.T) {
	registry := NewRegistry()

	first := NewSession("U-a", "A", nil)
	require.Nil(t, registry.Add(first))
	require.Equal(t, 1, registry.Len())

	second := NewSession("U-a", "A", nil)
	prior := registry.Add(second)
	require.Same(t, first, prior, "adding returns the replaced session")
	require.Equal(t, 1, registry.Len())
	require.Same(t, second, registry.Get("U-a"))
}

func TestRegistryRemoveIgnoresStaleSession(t *testing.T) {
	registry := NewRegistry()

	first := NewSession("U-a", "A", nil)
	registry.Add(first)
	second := NewSession("U-a", "A", nil)
	registry.Add(second)

	// The stale session's disconnect must not evict the live one.
	assert.False(t, registry.Remove(first))
	require.Same(t, second, registry.Get("U-a"))

	assert.True(t, registry.Remove(second))
	assert.Nil(t, registry.Get("U-a"))
}

func TestRoomsJoinLeaveBroadcast(t *testing.T) {
	rooms := NewRooms()
	a := NewSession("U-a", "A", nil)
	b := NewSession("U-b", "B", nil)

	room := ConversationRoom("C-1")
	rooms.Join(room, a)
	rooms.Join(room, b)
	require.True(t, rooms.Contains(room, a))

	rooms.Broadcast(room, ServerEvent{Type: EventUserTyping, Payload: nil}, a)
	assertEmpty(t, a)
	drainOne(t, b)

	rooms.Leave(room, b)
	rooms.Broadcast(room, ServerEvent{Type: EventUserTyping, Payload: nil}, nil)
	drainOne(t, a)
	assertEmpty(t, b)
}

func TestRoomsLeaveAll(t *testing.T) {
	rooms := NewRooms()
	a := NewSession("U-a", "A", nil)

	rooms.Join(UserRoom("U-a"), a)
	rooms.Join(ConversationRoom("C-1"), a)
	rooms.Join(ConversationRoom("C-2"), a)

	rooms.LeaveAll(a)
	assert.False(t, rooms.Contains(UserRoom("U-a"), a))
	assert.False(t, rooms.Contains(ConversationRoom("C-1"), a))
	assert.False(t, rooms.Contains(ConversationRoom("C-2"), a))
}

func TestSessionSendDropsWhenFull(t *testing.T) {
	s := NewSession("U-a", "A", nil)
	for i := 0; i < 200; i++ {
		s.Send(ServerEvent{Type: EventNewMessage, Payload: i})
	}
	// The buffer capped out; the session is still usable.
	s.Close()
	s.Send(ServerEvent{Type: EventNewMessage, Payload: "after close"})
}
