package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// TestVersionImmutabilityBlocksUpdate verifies that UPDATE operations on
// legal_document_versions are blocked by the database trigger with a hard
// failure.
func TestVersionImmutabilityBlocksUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	databaseURL := getTestDatabaseURL(t)
	db, err := Open(ctx, databaseURL)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Ensure migration 0002 is applied
	_, err = db.ExecContext(ctx, `
		SELECT 1 FROM information_schema.triggers
		WHERE trigger_name = 'trg_legal_versions_block_update'
	`)
	if err != nil {
		t.Fatalf("immutability trigger not found; migration 0002 may not be applied: %v", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO legal_documents (id, human_name, slug)
		VALUES ('doc-immutability-test', 'Immutability Test', 'immutability-test')
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		t.Fatalf("insert test document: %v", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO legal_document_versions (document_id, version_label, content_snapshot, created_at, published_at, version_hash)
		VALUES ('doc-immutability-test', '1.0.0', 'Test snapshot', NOW(), NOW(), 'abc123')
	`)
	if err != nil {
		t.Fatalf("insert test version: %v", err)
	}

	// Attempt to UPDATE the version row - should fail
	_, err = db.ExecContext(ctx, `
		UPDATE legal_document_versions
		SET content_snapshot = 'Tampered snapshot'
		WHERE document_id = 'doc-immutability-test'
	`)

	if err == nil {
		t.Fatal("expected UPDATE to be blocked, but it succeeded")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected PostgreSQL error, got: %v", err)
	}

	if pgErr.SQLState() != "55000" {
		t.Fatalf("expected SQLSTATE 55000 (object_not_in_prerequisite_state), got: %s", pgErr.SQLState())
	}

	if pgErr.Message != "legal_document_versions is immutable; UPDATE is not allowed" {
		t.Fatalf("unexpected error message: %s", pgErr.Message)
	}

	// Cleanup; deleting the document cascades to its versions
	_, _ = db.ExecContext(ctx, `DELETE FROM legal_documents WHERE id = 'doc-immutability-test'`)
}

// TestVersionDeleteCascadesWithDocument verifies that DELETE stays possible
// so that removing a document takes its version history with it.
func TestVersionDeleteCascadesWithDocument(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	databaseURL := getTestDatabaseURL(t)
	db, err := Open(ctx, databaseURL)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
		INSERT INTO legal_documents (id, human_name, slug)
		VALUES ('doc-cascade-test', 'Cascade Test', 'cascade-test')
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		t.Fatalf("insert test document: %v", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO legal_document_versions (document_id, version_label, content_snapshot, created_at, published_at, version_hash)
		VALUES ('doc-cascade-test', '1.0.0', 'Test snapshot', NOW(), NOW(), 'def456')
	`)
	if err != nil {
		t.Fatalf("insert test version: %v", err)
	}

	_, err = db.ExecContext(ctx, `DELETE FROM legal_documents WHERE id = 'doc-cascade-test'`)
	if err != nil {
		t.Fatalf("delete document should succeed: %v", err)
	}

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM legal_document_versions WHERE document_id = 'doc-cascade-test'`).Scan(&count)
	if err != nil {
		t.Fatalf("query versions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade to remove versions, got %d rows", count)
	}
}

// getTestDatabaseURL returns the database URL for testing.
// It checks the TEST_DATABASE_URL environment variable first,
// then falls back to a default local development URL.
func getTestDatabaseURL(t *testing.T) string {
	t.Helper()

	if url := getenv("TEST_DATABASE_URL", ""); url != "" {
		return url
	}

	host := getenv("POSTGRES_HOST", "localhost")
	port := getenv("POSTGRES_PORT", "5432")
	user := getenv("POSTGRES_USER", "covenant")
	pass := getenv("POSTGRES_PASSWORD", "covenant")
	dbname := getenv("POSTGRES_DB", "covenant_test")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + dbname + "?sslmode=disable"
}

func getenv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
