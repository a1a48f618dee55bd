package debate_test

import (
	"context"
	"errors"
	"testing"

	model "debate-arena/internal/model/debate"
	debate "debate-arena/internal/service/debate"
)

func TestServiceCreateAndGet(t *testing.T) {
	svc := debate.NewService()
	ctx := context.Background()

	d, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if d.Status != model.StatusOpen {
		t.Fatalf("expected new debate to be open, got %s", d.Status)
	}

	got, err := svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.ID != d.ID {
		t.Fatalf("unexpected debate ID: got %s want %s", got.ID, d.ID)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc := debate.NewService()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, debate.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceAppendPreservesOrder(t *testing.T) {
	svc := debate.NewService()
	ctx := context.Background()

	d, _ := svc.Create(ctx)
	if _, err := svc.Append(ctx, d.ID, "User A", "The sky is blue"); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if _, err := svc.Append(ctx, d.ID, "User B", "No"); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	transcript, err := svc.Transcript(ctx, d.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(transcript))
	}
	if transcript[0].User != "User A" || transcript[0].Text != "The sky is blue" {
		t.Fatalf("unexpected first message: %+v", transcript[0])
	}
	if transcript[1].User != "User B" || transcript[1].Text != "No" {
		t.Fatalf("unexpected second message: %+v", transcript[1])
	}
}

func TestServiceAppendAfterClose(t *testing.T) {
	svc := debate.NewService()
	ctx := context.Background()

	d, _ := svc.Create(ctx)
	if _, err := svc.Close(ctx, d.ID); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	if _, err := svc.Append(ctx, d.ID, "User A", "too late"); !errors.Is(err, debate.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	transcript, _ := svc.Transcript(ctx, d.ID)
	if len(transcript) != 0 {
		t.Fatalf("expected empty transcript after rejected append, got %d messages", len(transcript))
	}
}

func TestServiceCloseOnce(t *testing.T) {
	svc := debate.NewService()
	ctx := context.Background()

	d, _ := svc.Create(ctx)
	svc.Append(ctx, d.ID, "User A", "opening statement")

	transcript, err := svc.Close(ctx, d.ID)
	if err != nil {
		t.Fatalf("first Close err: %v", err)
	}
	if len(transcript) != 1 {
		t.Fatalf("expected transcript of 1 message, got %d", len(transcript))
	}

	if _, err := svc.Close(ctx, d.ID); !errors.Is(err, debate.ErrClosed) {
		t.Fatalf("expected ErrClosed on second Close, got %v", err)
	}

	got, _ := svc.Get(ctx, d.ID)
	if got.Status != model.StatusClosed {
		t.Fatalf("expected closed status, got %s", got.Status)
	}
}

func TestServiceListOpenIDs(t *testing.T) {
	svc := debate.NewService()
	ctx := context.Background()

	first, _ := svc.Create(ctx)
	second, _ := svc.Create(ctx)
	svc.Close(ctx, first.ID)

	ids := svc.ListOpenIDs(ctx)
	if len(ids) != 1 {
		t.Fatalf("expected 1 open debate, got %d", len(ids))
	}
	if ids[0] != second.ID {
		t.Fatalf("expected %s, got %s", second.ID, ids[0])
	}
}
