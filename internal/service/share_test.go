package service

import "testing"

func TestToken_Deterministic(t *testing.T) {
	a, err := Token(testViz("Shared"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Token(testViz("Shared"))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same config produced different tokens: %s vs %s", a, b)
	}
	if len(a) != 10 {
		t.Fatalf("token %q has length %d, want 10", a, len(a))
	}
}

func TestToken_IgnoresLocalID(t *testing.T) {
	viz := testViz("Shared")
	withID := viz
	withID.ID = "local_only"

	a, _ := Token(viz)
	b, _ := Token(withID)
	if a != b {
		t.Fatal("token must key content, not the local ID")
	}
}

func TestShareService_CreateAndResolve(t *testing.T) {
	dir := t.TempDir()
	s := NewShareService(dir)

	snap, err := s.Create(testViz("Shared"))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Token == "" || snap.Created == "" {
		t.Fatalf("incomplete snapshot: %+v", snap)
	}

	// Sharing the same config again returns the existing link.
	again, err := s.Create(testViz("Shared"))
	if err != nil {
		t.Fatal(err)
	}
	if again.Token != snap.Token {
		t.Fatal("re-share minted a new token for identical content")
	}

	// Snapshots survive a restart.
	s2 := NewShareService(dir)
	got, ok := s2.Get(snap.Token)
	if !ok {
		t.Fatal("snapshot not persisted")
	}
	if got.Viz.Name != "Shared" {
		t.Fatalf("resolved name %q", got.Viz.Name)
	}
}

func TestShareService_UnknownToken(t *testing.T) {
	s := NewShareService(t.TempDir())
	if _, ok := s.Get("ffffffffff"); ok {
		t.Fatal("unknown token resolved")
	}
}
