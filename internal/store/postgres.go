package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrVersionConflict is returned when a publish loses the race against a
// concurrent publish for the same document: the latest version the caller
// computed against is no longer the latest.
var ErrVersionConflict = errors.New("latest version changed during publish")

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// failure, e.g. a duplicate document slug.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}

func (s *PostgresStore) EnsureUser(ctx context.Context, userID, displayName string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET display_name = CASE
			WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name
			ELSE users.display_name
		END
		RETURNING id, display_name, created_at
	`, userID, displayName).Scan(&user.ID, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("ensure user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) InsertDocument(ctx context.Context, item Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO legal_documents (id, human_name, slug, is_required)
		VALUES ($1, $2, $3, $4)
	`, item.ID, item.HumanName, item.Slug, item.IsRequired)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, documentID string) (Document, error) {
	var item Document
	err := s.db.QueryRowContext(ctx, `
		SELECT id, human_name, slug, is_required, created_at, updated_at
		FROM legal_documents
		WHERE id=$1
	`, documentID).Scan(&item.ID, &item.HumanName, &item.Slug, &item.IsRequired, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Document{}, err
	}
	return item, nil
}

func (s *PostgresStore) GetDocumentBySlug(ctx context.Context, slug string) (Document, error) {
	var item Document
	err := s.db.QueryRowContext(ctx, `
		SELECT id, human_name, slug, is_required, created_at, updated_at
		FROM legal_documents
		WHERE slug=$1
	`, slug).Scan(&item.ID, &item.HumanName, &item.Slug, &item.IsRequired, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Document{}, err
	}
	return item, nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, human_name, slug, is_required, created_at, updated_at
		FROM legal_documents
		ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// ListRequiredDocuments returns required documents in slug order; the
// compliance check preserves this order in its missing-versions list.
func (s *PostgresStore) ListRequiredDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, human_name, slug, is_required, created_at, updated_at
		FROM legal_documents
		WHERE is_required = TRUE
		ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("list required documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	items := make([]Document, 0)
	for rows.Next() {
		var item Document
		if err := rows.Scan(&item.ID, &item.HumanName, &item.Slug, &item.IsRequired, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) UpdateDocument(ctx context.Context, documentID, humanName string, isRequired bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE legal_documents
		SET human_name=$2, is_required=$3, updated_at=NOW()
		WHERE id=$1
	`, documentID, humanName, isRequired)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM legal_documents WHERE id=$1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertSection(ctx context.Context, item Section) (Section, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO legal_document_sections (document_id, heading, body, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, item.DocumentID, item.Heading, item.Body, item.SortOrder).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return Section{}, fmt.Errorf("insert section: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) GetSection(ctx context.Context, sectionID int64) (Section, error) {
	var item Section
	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, heading, body, sort_order, created_at
		FROM legal_document_sections
		WHERE id=$1
	`, sectionID).Scan(&item.ID, &item.DocumentID, &item.Heading, &item.Body, &item.SortOrder, &item.CreatedAt)
	if err != nil {
		return Section{}, err
	}
	return item, nil
}

// ListSections returns a document's sections ordered by (sort_order, id),
// the order the snapshot builder requires.
func (s *PostgresStore) ListSections(ctx context.Context, documentID string) ([]Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, heading, body, sort_order, created_at
		FROM legal_document_sections
		WHERE document_id=$1
		ORDER BY sort_order, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	items := make([]Section, 0)
	for rows.Next() {
		var item Section
		if err := rows.Scan(&item.ID, &item.DocumentID, &item.Heading, &item.Body, &item.SortOrder, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) UpdateSection(ctx context.Context, sectionID int64, heading, body string, sortOrder int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE legal_document_sections
		SET heading=$2, body=$3, sort_order=$4
		WHERE id=$1
	`, sectionID, heading, body, sortOrder)
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSection(ctx context.Context, sectionID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM legal_document_sections WHERE id=$1`, sectionID)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

// LatestVersion returns the most recently created version for a document,
// or nil when the document has no versions yet.
func (s *PostgresStore) LatestVersion(ctx context.Context, documentID string) (*Version, error) {
	var item Version
	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, version_label, content_snapshot, created_at, published_at, version_hash
		FROM legal_document_versions
		WHERE document_id=$1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, documentID).Scan(&item.ID, &item.DocumentID, &item.Label, &item.ContentSnapshot, &item.CreatedAt, &item.PublishedAt, &item.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest version: %w", err)
	}
	return &item, nil
}

func (s *PostgresStore) GetVersion(ctx context.Context, versionID int64) (Version, error) {
	var item Version
	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, version_label, content_snapshot, created_at, published_at, version_hash
		FROM legal_document_versions
		WHERE id=$1
	`, versionID).Scan(&item.ID, &item.DocumentID, &item.Label, &item.ContentSnapshot, &item.CreatedAt, &item.PublishedAt, &item.Hash)
	if err != nil {
		return Version{}, err
	}
	return item, nil
}

func (s *PostgresStore) ListVersions(ctx context.Context, documentID string) ([]Version, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, version_label, content_snapshot, created_at, published_at, version_hash
		FROM legal_document_versions
		WHERE document_id=$1
		ORDER BY created_at DESC, id DESC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	items := make([]Version, 0)
	for rows.Next() {
		var item Version
		if err := rows.Scan(&item.ID, &item.DocumentID, &item.Label, &item.ContentSnapshot, &item.CreatedAt, &item.PublishedAt, &item.Hash); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return items, nil
}

// PublishVersion appends a new version inside one transaction. The document
// row is locked FOR UPDATE to serialize concurrent publishes, then the
// latest version is re-read; if it no longer matches expectedPrevID the
// caller computed its label and diff against stale state and gets
// ErrVersionConflict instead of a duplicate bump. expectedPrevID is 0 for a
// first publish.
func (s *PostgresStore) PublishVersion(ctx context.Context, item Version, expectedPrevID int64) (Version, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Version{}, fmt.Errorf("begin publish tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var lockedID string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM legal_documents WHERE id=$1 FOR UPDATE`, item.DocumentID).Scan(&lockedID); err != nil {
		return Version{}, fmt.Errorf("lock document: %w", err)
	}

	var latestID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM legal_document_versions
		WHERE document_id=$1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, item.DocumentID).Scan(&latestID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Version{}, fmt.Errorf("recheck latest version: %w", err)
	}
	if latestID != expectedPrevID {
		return Version{}, ErrVersionConflict
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO legal_document_versions (document_id, version_label, content_snapshot, created_at, published_at, version_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, item.DocumentID, item.Label, item.ContentSnapshot, item.CreatedAt, item.PublishedAt, item.Hash).Scan(&item.ID)
	if err != nil {
		return Version{}, fmt.Errorf("insert version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Version{}, fmt.Errorf("commit publish: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) HasAcceptance(ctx context.Context, userID string, versionID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM legal_document_acceptances WHERE user_id=$1 AND version_id=$2)
	`, userID, versionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check acceptance: %w", err)
	}
	return exists, nil
}

// RecordAcceptance is an atomic get-or-create keyed on (user_id,
// version_id). The unique constraint makes it idempotent under concurrent
// duplicate submissions: the loser of the race reads the winner's row.
// The boolean reports whether a new row was created.
func (s *PostgresStore) RecordAcceptance(ctx context.Context, item Acceptance) (Acceptance, bool, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO legal_document_acceptances (user_id, version_id, version_hash_snapshot, accepted_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, version_id) DO NOTHING
		RETURNING id, accepted_at
	`, item.UserID, item.VersionID, item.VersionHashSnapshot, item.AcceptedAt, item.IPAddress, item.UserAgent).
		Scan(&item.ID, &item.AcceptedAt)
	if err == nil {
		return item, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Acceptance{}, false, fmt.Errorf("insert acceptance: %w", err)
	}

	existing, err := s.GetAcceptance(ctx, item.UserID, item.VersionID)
	if err != nil {
		return Acceptance{}, false, fmt.Errorf("read existing acceptance: %w", err)
	}
	return existing, false, nil
}

func (s *PostgresStore) GetAcceptance(ctx context.Context, userID string, versionID int64) (Acceptance, error) {
	var item Acceptance
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, version_id, version_hash_snapshot, accepted_at, ip_address, user_agent
		FROM legal_document_acceptances
		WHERE user_id=$1 AND version_id=$2
	`, userID, versionID).Scan(&item.ID, &item.UserID, &item.VersionID, &item.VersionHashSnapshot, &item.AcceptedAt, &item.IPAddress, &item.UserAgent)
	if err != nil {
		return Acceptance{}, err
	}
	return item, nil
}
