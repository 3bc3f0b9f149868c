package repository

import (
	"sort"
	"testing"
)

func TestGroupCallJoinIdempotent(t *testing.T) {
	repo := NewInMemoryGroupCallRepo()
	repo.Create("call-1", "alice", "Alice")

	first, ok := repo.Join("call-1", "bob")
	if !ok {
		t.Fatal("join should succeed")
	}
	second, ok := repo.Join("call-1", "bob")
	if !ok {
		t.Fatal("second join should still succeed")
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("rosters = %v / %v, want 2 members each", first, second)
	}
}

func TestGroupCallJoinUnknownCall(t *testing.T) {
	repo := NewInMemoryGroupCallRepo()
	if _, ok := repo.Join("ghost", "bob"); ok {
		t.Error("join of unknown call must fail")
	}
}

func TestGroupCallLeaveLastDeletesCall(t *testing.T) {
	repo := NewInMemoryGroupCallRepo()
	repo.Create("call-1", "alice", "Alice")
	repo.Join("call-1", "bob")

	remaining, removed := repo.Leave("call-1", "alice")
	if !removed || len(remaining) != 1 || remaining[0] != "bob" {
		t.Fatalf("Leave(alice) = (%v, %v)", remaining, removed)
	}

	remaining, removed = repo.Leave("call-1", "bob")
	if !removed || remaining != nil {
		t.Fatalf("Leave(bob) = (%v, %v), want empty roster", remaining, removed)
	}

	// Call is gone: signaling and joining are no-ops now.
	if _, ok := repo.OtherParticipants("call-1", "bob"); ok {
		t.Error("signal membership lookup should fail after last leave")
	}
	if _, ok := repo.Join("call-1", "carol"); ok {
		t.Error("join should fail after call deleted")
	}
}

func TestGroupCallLeaveNonMember(t *testing.T) {
	repo := NewInMemoryGroupCallRepo()
	repo.Create("call-1", "alice", "Alice")
	if _, removed := repo.Leave("call-1", "bob"); removed {
		t.Error("leave by non-member should report not removed")
	}
}

func TestOtherParticipantsRequiresMembership(t *testing.T) {
	repo := NewInMemoryGroupCallRepo()
	repo.Create("call-1", "alice", "Alice")
	repo.Join("call-1", "bob")
	repo.Join("call-1", "carol")

	others, ok := repo.OtherParticipants("call-1", "bob")
	if !ok {
		t.Fatal("member should be allowed to signal")
	}
	sort.Strings(others)
	if len(others) != 2 || others[0] != "alice" || others[1] != "carol" {
		t.Fatalf("others = %v", others)
	}

	if _, ok := repo.OtherParticipants("call-1", "dave"); ok {
		t.Error("non-member must not see the roster")
	}
}

func TestEndCreatorOnly(t *testing.T) {
	repo := NewInMemoryGroupCallRepo()
	repo.Create("call-1", "alice", "Alice")
	repo.Join("call-1", "bob")

	if _, ok := repo.End("call-1", "bob"); ok {
		t.Fatal("non-creator end must be ignored")
	}
	if _, ok := repo.OtherParticipants("call-1", "bob"); !ok {
		t.Fatal("call should survive a non-creator end")
	}

	participants, ok := repo.End("call-1", "alice")
	if !ok || len(participants) != 2 {
		t.Fatalf("End by creator = (%v, %v)", participants, ok)
	}
	if _, ok := repo.Join("call-1", "carol"); ok {
		t.Error("call should be deleted after creator end")
	}
}

func TestCallsWithUser(t *testing.T) {
	repo := NewInMemoryGroupCallRepo()
	repo.Create("c1", "alice", "Alice")
	repo.Create("c2", "bob", "Bob")
	repo.Join("c2", "alice")
	repo.Create("c3", "carol", "Carol")

	calls := repo.CallsWithUser("alice")
	sort.Strings(calls)
	if len(calls) != 2 || calls[0] != "c1" || calls[1] != "c2" {
		t.Fatalf("CallsWithUser(alice) = %v", calls)
	}
}
