package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection keeps the in-memory database alive across queries.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return count == 1
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "CREATE TABLE a(id);", want: "CREATE TABLE a(id);"},
		{name: "up only", content: "-- +migrate Up\nCREATE TABLE a(id);", want: "\nCREATE TABLE a(id);"},
		{name: "up and down", content: "-- +migrate Up\nCREATE TABLE a(id);\n-- +migrate Down\nDROP TABLE a;", want: "\nCREATE TABLE a(id);\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpSection(tt.content); got != tt.want {
				t.Fatalf("UpSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadSortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/002_b.sql":    {Data: []byte("CREATE TABLE b(id);")},
		"sql/001_a.sql":    {Data: []byte("CREATE TABLE a(id);")},
		"sql/README.md":    {Data: []byte("notes")},
		"sql/nested/x.sql": {Data: []byte("CREATE TABLE x(id);")},
	}
	migrations, err := Load(fsys, "sql")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var names []string
	for _, m := range migrations {
		names = append(names, m.Name)
	}
	if want := []string{"sql/001_a.sql", "sql/002_b.sql"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	if migrations[0].Checksum == migrations[1].Checksum {
		t.Fatal("expected distinct checksums")
	}
}

func TestApplyRunsPendingOnce(t *testing.T) {
	db := openDB(t)
	fsys := fstest.MapFS{
		"001_items.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;")},
	}

	applied, err := Apply(context.Background(), db, fsys, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if want := []string{"001_items.sql"}; !reflect.DeepEqual(applied, want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected items table")
	}

	fsys["002_tags.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE tags(id TEXT PRIMARY KEY);")}
	applied, err = Apply(context.Background(), db, fsys, ".")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if want := []string{"002_tags.sql"}; !reflect.DeepEqual(applied, want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
}

func TestApplyDetectsDrift(t *testing.T) {
	db := openDB(t)
	fsys := fstest.MapFS{"001_items.sql": {Data: []byte("CREATE TABLE items(id TEXT);")}}
	if _, err := Apply(context.Background(), db, fsys, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	fsys["001_items.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE items(id TEXT, name TEXT);")}
	if _, err := Apply(context.Background(), db, fsys, ""); !errors.Is(err, ErrDrift) {
		t.Fatalf("err = %v, want ErrDrift", err)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openDB(t)
	fsys := fstest.MapFS{
		"001_ok.sql":  {Data: []byte("CREATE TABLE ok(id TEXT);")},
		"002_bad.sql": {Data: []byte("CREATE TABLE broken(")},
	}
	applied, err := Apply(context.Background(), db, fsys, "")
	if err == nil {
		t.Fatal("expected error for invalid migration")
	}
	if want := []string{"001_ok.sql"}; !reflect.DeepEqual(applied, want) {
		t.Fatalf("applied = %v, want %v", applied, want)
	}
	var recorded int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&recorded); err != nil {
		t.Fatalf("count history: %v", err)
	}
	if recorded != 1 {
		t.Fatalf("recorded = %d, want 1", recorded)
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if _, err := Apply(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected error for nil db")
	}
}
