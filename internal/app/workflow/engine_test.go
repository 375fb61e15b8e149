// internal/app/workflow/engine_test.go
package workflow

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vslopes/doahub/internal/domain/models"
	"github.com/vslopes/doahub/internal/testutil"
)

func TestMoveCopiesFieldsUnderNewID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := New(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := fx.CreateDonation(ctx, models.StagePending, "Dona Rosa")

	moved, err := e.Move(ctx, d.ID, models.StagePending, models.StageAccepted)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved.ID == d.ID {
		t.Error("moved donation kept its source id")
	}
	if moved.Nome != d.Nome || moved.NumeroPessoas != d.NumeroPessoas ||
		moved.Whatsapp != d.Whatsapp || moved.EndAtu != d.EndAtu {
		t.Errorf("moved donation lost fields: %+v", moved)
	}

	// Gone from the source, present in the destination.
	if _, err := e.Store(models.StagePending).GetByID(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("source lookup after move: error = %v, want ErrNotFound", err)
	}
	if _, err := e.Store(models.StageAccepted).GetByID(ctx, moved.ID); err != nil {
		t.Errorf("destination lookup after move: %v", err)
	}
}

func TestMovePreservesTotalCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := New(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateDonation(ctx, models.StagePending, "A")
	fx.CreateDonation(ctx, models.StagePending, "B")

	total := func() int64 {
		var n int64
		for _, stage := range models.Stages {
			c, err := e.Store(stage).Count(ctx)
			if err != nil {
				t.Fatalf("Count(%s): %v", stage, err)
			}
			n += c
		}
		return n
	}

	before := total()
	moved, err := e.Move(ctx, a.ID, models.StagePending, models.StageRejected)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got := total(); got != before {
		t.Errorf("total donations = %d after move, want %d", got, before)
	}

	// Chain the same donation onward; the count still holds.
	if _, err := e.Move(ctx, moved.ID, models.StageRejected, models.StageFinalized); err != nil {
		t.Fatalf("second Move: %v", err)
	}
	if got := total(); got != before {
		t.Errorf("total donations = %d after second move, want %d", got, before)
	}
}

func TestMoveMissingDonation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := New(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := e.Move(ctx, primitive.NewObjectID(), models.StagePending, models.StageAccepted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Move error = %v, want ErrNotFound", err)
	}

	// Nothing may appear in the destination on a miss.
	n, err := e.Store(models.StageAccepted).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("destination holds %d donations after failed move, want 0", n)
	}
}

func TestMoveMissesDonationInOtherStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := New(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The donation sits in accepted; a pending → rejected move must miss.
	d := fx.CreateDonation(ctx, models.StageAccepted, "Fora de fase")

	_, err := e.Move(ctx, d.ID, models.StagePending, models.StageRejected)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Move error = %v, want ErrNotFound", err)
	}
	if _, err := e.Store(models.StageAccepted).GetByID(ctx, d.ID); err != nil {
		t.Errorf("donation disturbed by failed move: %v", err)
	}
}
