package worker

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"cricsaga/internal/app"
	"cricsaga/internal/storage"
)

func TestJanitorSweepsIdleMatches(t *testing.T) {
	ctx := context.Background()
	dir := storage.NewMemoryDirectory()
	engine := app.NewEngine(app.NewService(nil), dir, storage.NewFileArchive(t.TempDir()+"/history.json"), nil, zerolog.Nop())

	v, err := engine.CreateMatch(ctx, "u1", "Alice")
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	m, err := dir.Lookup(ctx, v.MatchID)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	m.LastActionAt = time.Now().Add(-time.Hour)

	j := NewJanitor(engine, 10*time.Millisecond, time.Minute, zerolog.Nop())
	if err := j.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer j.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if _, err := dir.Lookup(ctx, v.MatchID); err != nil {
			return // swept
		}
		select {
		case <-deadline:
			t.Fatal("idle match was not swept")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
