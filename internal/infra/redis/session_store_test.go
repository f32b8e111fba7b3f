package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"studybuddy-service/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)
	ctx := context.Background()

	quiz := domain.Quiz{
		Topic:          "go",
		RequestedCount: 1,
		Questions: []domain.Question{{
			ID:           1,
			Text:         "What is a goroutine?",
			Options:      []string{"thread", "green thread", "process", "fiber"},
			CorrectIndex: 1,
		}},
	}

	if err := store.Save(ctx, "alice@example.com", quiz); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("study:session:alice@example.com") {
		t.Fatalf("expected redis key to be set")
	}

	got, ok, err := store.Get(ctx, "alice@example.com")
	if err != nil || !ok {
		t.Fatalf("expected session, ok=%v err=%v", ok, err)
	}
	if len(got.Questions) != 1 || got.Questions[0].CorrectIndex != 1 {
		t.Fatalf("quiz mangled in transit: %+v", got)
	}

	if err := store.Delete(ctx, "alice@example.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("study:session:alice@example.com") {
		t.Fatalf("expected redis key removed")
	}
}

func TestSessionStoreExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Second)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", domain.Quiz{Topic: "t"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, ok, _ := store.Get(ctx, "u1"); ok {
		t.Fatalf("expected session to expire")
	}
}

func TestSessionStoreMissingKey(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	_, ok, err := store.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("missing key should not error: %v", err)
	}
	if ok {
		t.Fatalf("expected no session")
	}
}
