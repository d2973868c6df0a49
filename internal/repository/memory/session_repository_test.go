package memory

import (
	"testing"
	"time"

	"ai-library-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	r := NewSessionRepository(0) // default ttl

	if _, found := r.Get("s1"); found {
		t.Fatal("Get on an empty cache reported a hit")
	}

	r.Save(&store.Session{ID: "s1"})
	got, found := r.Get("s1")
	if !found || got.ID != "s1" {
		t.Fatalf("Get = %+v, %v", got, found)
	}

	r.Delete("s1")
	if _, found := r.Get("s1"); found {
		t.Fatal("session survived Delete")
	}
}

func TestSessionRepositoryExpiresAfterTTL(t *testing.T) {
	r := NewSessionRepository(10 * time.Millisecond)

	r.Save(&store.Session{ID: "s1"})
	time.Sleep(30 * time.Millisecond)

	if _, found := r.Get("s1"); found {
		t.Fatal("session survived past its ttl")
	}
}
