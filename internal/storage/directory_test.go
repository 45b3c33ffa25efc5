package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"cricsaga/internal/domain"
	"cricsaga/internal/ports"
)

func testMatch(id string) *domain.Match {
	m := domain.NewMatch(id, "M17000001234", domain.Player{ID: "u1", Name: "Alice"}, time.Unix(1700000000, 0))
	m.Mode = domain.ModeClassic
	m.MaxWickets = domain.FiniteLimit(2)
	m.MaxOvers = domain.FiniteLimit(1)
	return m
}

// directoryUnderTest runs the shared contract checks against any directory.
func directoryUnderTest(t *testing.T, dir ports.SessionDirectory) {
	ctx := context.Background()

	if _, err := dir.Lookup(ctx, "absent"); err == nil {
		t.Fatal("lookup of unknown id should fail")
	}

	m := testMatch("m1")
	if err := dir.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := dir.Create(ctx, testMatch("m1")); err == nil {
		t.Fatal("duplicate create should fail")
	}

	got, err := dir.Lookup(ctx, "m1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ID != "m1" || got.Mode != domain.ModeClassic {
		t.Errorf("lookup returned %+v", got)
	}

	got.Innings[0].Runs = 7
	got.Phase = domain.PhaseInningsInProgress
	if err := dir.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = dir.Lookup(ctx, "m1")
	if err != nil {
		t.Fatalf("Lookup after save: %v", err)
	}
	if got.Innings[0].Runs != 7 || got.Phase != domain.PhaseInningsInProgress {
		t.Errorf("saved state not visible: %+v", got)
	}

	if err := dir.Create(ctx, testMatch("m2")); err != nil {
		t.Fatalf("Create m2: %v", err)
	}
	all, err := dir.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List returned %d matches, want 2", len(all))
	}

	if err := dir.Remove(ctx, "m1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := dir.Lookup(ctx, "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup after remove: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryDirectory(t *testing.T) {
	directoryUnderTest(t, NewMemoryDirectory())
}

func TestRedisDirectory(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	directoryUnderTest(t, NewRedisDirectory(client))
}

func TestRedisDirectoryRoundTripsFullState(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	dir := NewRedisDirectory(client)
	ctx := context.Background()

	m := testMatch("m1")
	joiner := domain.Player{ID: "u2", Name: "Bob"}
	m.Joiner = &joiner
	m.Batsman = m.Creator
	m.Bowler = joiner
	m.ThisOver = []string{"4", "W"}
	m.OverScores = map[int]int{0: 4}
	pick := 3
	m.PendingBat = &pick

	if err := dir.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := dir.Lookup(ctx, "m1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if got.Joiner == nil || got.Joiner.ID != "u2" {
		t.Errorf("joiner lost in round trip: %+v", got.Joiner)
	}
	if len(got.ThisOver) != 2 || got.ThisOver[1] != "W" {
		t.Errorf("over sequence lost: %v", got.ThisOver)
	}
	if got.OverScores[0] != 4 {
		t.Errorf("over scores lost: %v", got.OverScores)
	}
	if got.PendingBat == nil || *got.PendingBat != 3 {
		t.Errorf("pending pick lost: %v", got.PendingBat)
	}
}
