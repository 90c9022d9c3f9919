package core

import (
	"sort"
	"testing"
)

func sorted(members []string) []string {
	out := append([]string(nil), members...)
	sort.Strings(out)
	return out
}

func TestRoomTableJoinCreatesRoom(t *testing.T) {
	rt := NewRoomTable()

	isNew, members := rt.Join("r1", "u1")
	if !isNew {
		t.Fatalf("first join should create the room")
	}
	if len(members) != 1 || members[0] != "u1" {
		t.Fatalf("unexpected members: %v", members)
	}

	isNew, members = rt.Join("r1", "u2")
	if isNew {
		t.Fatalf("second join should not report a new room")
	}
	if got := sorted(members); len(got) != 2 || got[0] != "u1" || got[1] != "u2" {
		t.Fatalf("unexpected members: %v", members)
	}
}

func TestRoomTableJoinIsIdempotentPerMember(t *testing.T) {
	rt := NewRoomTable()

	rt.Join("r1", "u1")
	_, members := rt.Join("r1", "u1")
	if len(members) != 1 {
		t.Fatalf("duplicate join changed membership: %v", members)
	}
}

func TestRoomTableEmptyRoomIsDestroyed(t *testing.T) {
	rt := NewRoomTable()

	rt.Join("r1", "u1")
	if !rt.Leave("r1", "u1") {
		t.Fatalf("expected leave to remove the member")
	}
	if rt.Exists("r1") {
		t.Fatalf("empty room must not persist")
	}
	if members := rt.Members("r1"); len(members) != 0 {
		t.Fatalf("absent room must read as empty, got %v", members)
	}
}

func TestRoomTableLeaveIdempotent(t *testing.T) {
	rt := NewRoomTable()

	rt.Join("r1", "u1")
	rt.Join("r1", "u2")

	if !rt.Leave("r1", "u1") {
		t.Fatalf("first leave should report removal")
	}
	if rt.Leave("r1", "u1") {
		t.Fatalf("second leave must be a no-op")
	}
	if rt.Leave("ghost", "u1") {
		t.Fatalf("leave of unknown room must be a no-op")
	}
	if members := rt.Members("r1"); len(members) != 1 || members[0] != "u2" {
		t.Fatalf("unexpected members after leaves: %v", members)
	}
}

func TestRoomTableConnectionRoomTracking(t *testing.T) {
	rt := NewRoomTable()

	rt.SetRoom("c1", "r1")
	room, ok := rt.RoomOf("c1")
	if !ok || room != "r1" {
		t.Fatalf("RoomOf = %q, %v", room, ok)
	}

	// Clearing against a stale room id leaves the association alone.
	rt.ClearRoom("c1", "r2")
	if _, ok := rt.RoomOf("c1"); !ok {
		t.Fatalf("mismatched clear should not drop the association")
	}

	rt.ClearRoom("c1", "r1")
	if _, ok := rt.RoomOf("c1"); ok {
		t.Fatalf("association should be gone")
	}
}
