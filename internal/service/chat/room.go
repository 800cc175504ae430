package chat

// Room id helpers. Every connected user sits in their personal room;
// conversation rooms are joined and left explicitly.

// UserRoom names the personal room a user always occupies.
func UserRoom(userId string) string {
	return "user:" + userId
}

// ConversationRoom names the room for a conversation thread.
func ConversationRoom(conversationId string) string {
	return "conversation:" + conversationId
}

// Rooms tracks room membership. Like the registry it is owned by the
// hub loop and never touched concurrently.
type Rooms struct {
	members map[string]map[*Session]struct{}
}

// NewRooms creates an empty room table.
func NewRooms() *Rooms {
	return &Rooms{members: make(map[string]map[*Session]struct{})}
}

// Join adds the session to a room, creating the room on first join.
func (r *Rooms) Join(roomId string, session *Session) {
	room, ok := r.members[roomId]
	if !ok {
		room = make(map[*Session]struct{})
		r.members[roomId] = room
	}
	room[session] = struct{}{}
}

// Leave removes the session from a room, dropping the room when empty.
func (r *Rooms) Leave(roomId string, session *Session) {
	room, ok := r.members[roomId]
	if !ok {
		return
	}
	delete(room, session)
	if len(room) == 0 {
		delete(r.members, roomId)
	}
}

// LeaveAll removes the session from every room it joined. Called on
// disconnect.
func (r *Rooms) LeaveAll(session *Session) {
	for roomId, room := range r.members {
		if _, ok := room[session]; ok {
			delete(room, session)
			if len(room) == 0 {
				delete(r.members, roomId)
			}
		}
	}
}

// Broadcast sends the event to every member of the room except the
// excluded session (pass nil to reach everyone).
func (r *Rooms) Broadcast(roomId string, event ServerEvent, except *Session) {
	for session := range r.members[roomId] {
		if session == except {
			continue
		}
		session.Send(event)
	}
}

// Contains reports whether the session is in the room.
func (r *Rooms) Contains(roomId string, session *Session) bool {
	_, ok := r.members[roomId][session]
	return ok
}
