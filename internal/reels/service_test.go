package reels

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aniaesther/reddit2reels-backend/internal/db"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewRepository(database.Conn())
}

func TestCreateReel_RequiresLocatorOrBody(t *testing.T) {
	svc := NewService(newTestRepo(t), nil)

	_, err := svc.CreateReel(context.Background(), CreateParams{Title: "no content"})
	if err == nil {
		t.Fatal("expected error for request without locator or body")
	}

	_, err = svc.CreateReel(context.Background(), CreateParams{Locator: "   ", Body: "\n\t"})
	if err == nil {
		t.Fatal("expected error for whitespace-only locator and body")
	}
}

func TestCreateReel_RejectsNegativeMaxDuration(t *testing.T) {
	svc := NewService(newTestRepo(t), nil)

	_, err := svc.CreateReel(context.Background(), CreateParams{
		Body:               "Some narration.",
		MaxDurationSeconds: -5,
	})
	if err == nil {
		t.Fatal("expected error for negative max duration")
	}
}

func TestCreateReel_PersistsPendingRequest(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewService(repo, nil)

	created, err := svc.CreateReel(context.Background(), CreateParams{
		Title:              "  My Story  ",
		Body:               "Once upon a time.",
		VoiceSelector:      "calm",
		BackgroundSelector: "minecraft",
		MaxDurationSeconds: 59.5,
	})
	if err != nil {
		t.Fatalf("CreateReel() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated reel ID")
	}
	if created.Status != "pending" {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if created.Title != "My Story" {
		t.Errorf("title = %q, want trimmed title", created.Title)
	}

	got, err := svc.GetReel(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetReel() error = %v", err)
	}
	if got == nil {
		t.Fatal("reel not found after create")
	}
	if got.VoiceSelector != "calm" || got.BackgroundSelector != "minecraft" {
		t.Errorf("selectors = %q/%q, want calm/minecraft", got.VoiceSelector, got.BackgroundSelector)
	}
	if got.MaxDurationSeconds != 59.5 {
		t.Errorf("max duration = %v, want 59.5", got.MaxDurationSeconds)
	}
}

func TestGetReel_MissingReturnsNil(t *testing.T) {
	svc := NewService(newTestRepo(t), nil)

	got, err := svc.GetReel(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("GetReel() error = %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown reel, got %+v", got)
	}
}

func TestClaimReel_IsAtomic(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewService(repo, nil)

	created, err := svc.CreateReel(context.Background(), CreateParams{Body: "Hello."})
	if err != nil {
		t.Fatalf("CreateReel() error = %v", err)
	}

	first, err := repo.ClaimReel(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first claim error = %v", err)
	}
	if !first {
		t.Fatal("first claim should succeed")
	}

	second, err := repo.ClaimReel(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("second claim error = %v", err)
	}
	if second {
		t.Error("second claim should fail once the reel left pending")
	}

	got, err := repo.GetReel(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetReel() error = %v", err)
	}
	if got.Status != StatusRunning {
		t.Errorf("claimed status = %q, want %q", got.Status, StatusRunning)
	}
}

func TestRepository_ConfigRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	value, err := repo.GetConfig(context.Background(), "auth_token")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if value != "" {
		t.Errorf("missing key should read as empty, got %q", value)
	}

	if err := repo.SetConfig(context.Background(), "auth_token", "abc"); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	if err := repo.SetConfig(context.Background(), "auth_token", "def"); err != nil {
		t.Fatalf("SetConfig() upsert error = %v", err)
	}

	value, err = repo.GetConfig(context.Background(), "auth_token")
	if err != nil {
		t.Fatalf("GetConfig() after set error = %v", err)
	}
	if value != "def" {
		t.Errorf("config value = %q, want def", value)
	}
}
