package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCounterDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.DocumentCounter{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCounterNextSeedsAndAdvances(t *testing.T) {
	db := setupCounterDB(t, "counter_next")
	repo := NewCounterRepository(db)
	ctx := context.Background()

	// The first allocation of a fresh counter returns the seed.
	got, err := repo.Next(ctx, "invoice_folio", 177)
	if err != nil {
		t.Fatalf("first next: %v", err)
	}
	if got != 177 {
		t.Errorf("first allocation = %d, want 177", got)
	}

	for want := int64(178); want <= 180; want++ {
		got, err = repo.Next(ctx, "invoice_folio", 177)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Errorf("allocation = %d, want %d", got, want)
		}
	}

	value, ok, err := repo.Current(ctx, "invoice_folio")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !ok || value != 180 {
		t.Errorf("stored value = %d/%v, want 180/true", value, ok)
	}
}

func TestCounterNamesAreIndependent(t *testing.T) {
	db := setupCounterDB(t, "counter_names")
	repo := NewCounterRepository(db)
	ctx := context.Background()

	if _, err := repo.Next(ctx, "alpha", 10); err != nil {
		t.Fatalf("alpha: %v", err)
	}
	got, err := repo.Next(ctx, "beta", 500)
	if err != nil {
		t.Fatalf("beta: %v", err)
	}
	if got != 500 {
		t.Errorf("beta seed = %d, want 500", got)
	}

	got, err = repo.Next(ctx, "alpha", 10)
	if err != nil {
		t.Fatalf("alpha second: %v", err)
	}
	if got != 11 {
		t.Errorf("alpha second = %d, want 11", got)
	}
}

func TestCounterCurrentMissing(t *testing.T) {
	db := setupCounterDB(t, "counter_missing")
	repo := NewCounterRepository(db)

	_, ok, err := repo.Current(context.Background(), "never_allocated")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if ok {
		t.Error("missing counter reported as present")
	}
}
