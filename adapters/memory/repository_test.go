package memory

import (
	"context"
	"errors"
	"testing"

	"switchscope/domain/core"
	"switchscope/domain/investigation"
)

func TestRepository_RoundTrip(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	s := investigation.NewSession("HCP-1")
	if err := repo.SaveSession(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.SessionByHCP(ctx, "HCP-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("loaded session %s, want %s", got.ID, s.ID)
	}
}

func TestRepository_MissingSession(t *testing.T) {
	repo := NewRepository()
	_, err := repo.SessionByHCP(context.Background(), "HCP-404")
	if !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRepository_SaveReplacesSessionPerHCP(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first := investigation.NewSession("HCP-1")
	second := investigation.NewSession("HCP-1")
	repo.SaveSession(ctx, first)
	repo.SaveSession(ctx, second)

	got, err := repo.SessionByHCP(ctx, "HCP-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != second.ID {
		t.Error("later save must replace the stored session")
	}
}

func TestRepository_SaveConfirmation(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	s := investigation.NewSession("HCP-1")
	repo.SaveSession(ctx, s)

	record := &investigation.ConfirmationRecord{
		SessionID:   s.ID,
		Selected:    []core.HypothesisID{"h1"},
		SMENotes:    "reviewed",
		ConfirmedAt: core.Now(),
	}
	if err := repo.SaveConfirmation(ctx, record); err != nil {
		t.Fatalf("save confirmation: %v", err)
	}

	got, _ := repo.SessionByHCP(ctx, "HCP-1")
	if got.Confirmation == nil || got.Confirmation.SMENotes != "reviewed" {
		t.Errorf("confirmation not attached: %+v", got.Confirmation)
	}

	orphan := &investigation.ConfirmationRecord{SessionID: "nope"}
	if err := repo.SaveConfirmation(ctx, orphan); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for orphan record, got %v", err)
	}
}
