package core

// RoomTable maps room identities to member sets and tracks the room each
// connection currently occupies. Rooms exist only while non-empty. Like
// the Registry, it is owned and serialized by the Hub's run loop.
type RoomTable struct {
	members map[string]map[string]struct{} // room id -> user identities
	roomOf  map[string]string              // connection id -> room id
}

// NewRoomTable constructs an empty room table.
func NewRoomTable() *RoomTable {
	return &RoomTable{
		members: make(map[string]map[string]struct{}),
		roomOf:  make(map[string]string),
	}
}

// Join adds the user to the room, creating it on first join. Returns
// whether the room was just created and the member set after the join.
// Adding an existing member is a no-op.
func (t *RoomTable) Join(roomID, userID string) (isNew bool, current []string) {
	set, ok := t.members[roomID]
	if !ok {
		set = make(map[string]struct{})
		t.members[roomID] = set
		isNew = true
	}
	set[userID] = struct{}{}
	return isNew, t.Members(roomID)
}

// Leave removes the user from the room and destroys the room once its
// member set is empty. Returns whether the user was actually a member.
func (t *RoomTable) Leave(roomID, userID string) bool {
	set, ok := t.members[roomID]
	if !ok {
		return false
	}
	if _, member := set[userID]; !member {
		return false
	}
	delete(set, userID)
	if len(set) == 0 {
		delete(t.members, roomID)
	}
	return true
}

// IsMember reports whether the user is currently in the room.
func (t *RoomTable) IsMember(roomID, userID string) bool {
	_, ok := t.members[roomID][userID]
	return ok
}

// Members returns the member identities of a room. An absent room yields
// an empty slice, never an error: "no one here" is a valid state.
func (t *RoomTable) Members(roomID string) []string {
	set, ok := t.members[roomID]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// Exists reports whether the room currently has any members.
func (t *RoomTable) Exists(roomID string) bool {
	_, ok := t.members[roomID]
	return ok
}

// SetRoom records the room a connection currently occupies.
func (t *RoomTable) SetRoom(connID, roomID string) {
	t.roomOf[connID] = roomID
}

// RoomOf returns the room a connection currently occupies, if any.
func (t *RoomTable) RoomOf(connID string) (string, bool) {
	roomID, ok := t.roomOf[connID]
	return roomID, ok
}

// ClearRoom forgets a connection's room association if it still matches
// the given room.
func (t *RoomTable) ClearRoom(connID, roomID string) {
	if current, ok := t.roomOf[connID]; ok && current == roomID {
		delete(t.roomOf, connID)
	}
}
