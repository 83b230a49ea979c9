package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigratorLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"002_add_index.sql":         "CREATE INDEX idx ON t (a);",
		"001_clinical_resource.sql": "CREATE TABLE t (a INT);",
		"notes.txt":                 "ignored",
	}
	for name, sql := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMigrator(nil, dir)
	migrations, err := m.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("got %d migrations, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "clinical_resource" {
		t.Errorf("first migration = %+v, want version 1", migrations[0])
	}
	if migrations[1].Version != 2 {
		t.Errorf("second migration = %+v, want version 2", migrations[1])
	}
}

func TestMigratorLoadRejectsBadName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "alpha.sql"), []byte("SELECT 1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewMigrator(nil, dir).Load(); err == nil {
		t.Fatal("expected error for file without version prefix")
	}
}
