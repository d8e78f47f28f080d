package db

import (
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	d, err := Init(path)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer d.Close()

	// Migration must have created both tables.
	for _, table := range []string{"runs", "run_records"} {
		var name string
		err := d.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestInitIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	d, err := Init(path)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	d.Close()

	// Re-opening an existing database must not fail on migrations.
	d, err = Init(path)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	d.Close()
}
