package students

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"rollcall/internal/store/storetest"
)

func TestRepositoryUpdateChangesOnlyGivenFields(t *testing.T) {
	db := storetest.DB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	roll := "R-" + uuid.NewString()
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM students WHERE rollnum = $1`, roll) })

	if _, err := repo.Insert(ctx, Student{ID: uuid.NewString(), Name: "Ann", RollNum: roll, Branch: "CSE", Year: "2"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(ctx, Student{ID: uuid.NewString(), RollNum: roll}); !errors.Is(err, ErrDuplicateRollNumber) {
		t.Fatalf("duplicate err = %v", err)
	}

	year := "3"
	got, err := repo.Update(ctx, roll, Changes{Year: &year})
	if err != nil || got == nil {
		t.Fatalf("update: %+v, %v", got, err)
	}
	if got.Year != "3" || got.Name != "Ann" || got.Branch != "CSE" {
		t.Fatalf("update touched other fields: %+v", got)
	}

	if missing, err := repo.Update(ctx, "missing-"+roll, Changes{Year: &year}); err != nil || missing != nil {
		t.Fatalf("missing update = %+v, %v", missing, err)
	}
	if ok, err := repo.Delete(ctx, roll); err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	if ok, err := repo.Delete(ctx, roll); err != nil || ok {
		t.Fatalf("second delete = %v, %v", ok, err)
	}
}
