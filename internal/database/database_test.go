package database

import (
	"path/filepath"
	"testing"
)

func TestOpenSeedsHouseholds(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var households, readings int
	if err := db.QueryRow(`SELECT COUNT(*) FROM households`).Scan(&households); err != nil {
		t.Fatalf("count households: %v", err)
	}
	if households != 2 {
		t.Errorf("households = %d, want 2", households)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM daily_readings`).Scan(&readings); err != nil {
		t.Fatalf("count readings: %v", err)
	}
	if readings != 60 {
		t.Errorf("readings = %d, want 60", readings)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()

	var households int
	if err := db.QueryRow(`SELECT COUNT(*) FROM households`).Scan(&households); err != nil {
		t.Fatalf("count households: %v", err)
	}
	if households != 2 {
		t.Errorf("households = %d after reopen, want 2", households)
	}
}
