package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, title, file_url, extracted_text, summary, status, reject_reason, created_by, created_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, title, file_url, extracted_text, summary, status, created_by, created_at)
VALUES ($1, $2, $3, NULL, NULL, $4, $5, $6)`

	status := doc.Status
	if !status.Valid() {
		status = StatusPending
	}
	var createdBy sql.NullString
	if doc.CreatedBy != "" {
		createdBy = sql.NullString{String: doc.CreatedBy, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Title,
		doc.FileURL,
		string(status),
		createdBy,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// UpdateExtractedText stores the extraction result for a document.
func (r *PGRepo) UpdateExtractedText(ctx context.Context, id, text string) error {
	const query = `
UPDATE documents
SET extracted_text = $1
WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, text, id)
	return err
}

// UpdateSummary stores the summarization result for a document.
func (r *PGRepo) UpdateSummary(ctx context.Context, id, summary string) error {
	const query = `
UPDATE documents
SET summary = $1
WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, summary, id)
	return err
}

// ListByStatus lists documents in the given state, newest first.
func (r *PGRepo) ListByStatus(ctx context.Context, status Status) ([]Document, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE status = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Approve transitions the document to approved and grants visibility to the
// given users in a single transaction. Duplicate (document, user) pairs are
// no-ops via the primary key conflict clause.
func (r *PGRepo) Approve(ctx context.Context, id string, userIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE documents
SET status = 'approved', reject_reason = NULL
WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	for _, userID := range userIDs {
		if userID == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO document_assignments (document_id, user_id, assigned_at)
VALUES ($1, $2, now())
ON CONFLICT (document_id, user_id) DO NOTHING`, id, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Reject transitions the document to rejected and records the reason.
func (r *PGRepo) Reject(ctx context.Context, id, reason string) error {
	res, err := r.DB.ExecContext(ctx, `
UPDATE documents
SET status = 'rejected', reject_reason = $1
WHERE id = $2`, reason, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListVisibleFor returns approved documents assigned to the user, newest
// first. The assignment join is the authoritative visibility filter.
func (r *PGRepo) ListVisibleFor(ctx context.Context, userID string) ([]Document, error) {
	query := `
SELECT d.id, d.title, d.file_url, d.extracted_text, d.summary, d.status, d.reject_reason, d.created_by, d.created_at
FROM documents d
JOIN document_assignments a ON a.document_id = d.id
WHERE a.user_id = $1 AND d.status = 'approved'
ORDER BY d.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var extractedText sql.NullString
	var summary sql.NullString
	var status string
	var rejectReason sql.NullString
	var createdBy sql.NullString
	if err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.FileURL,
		&extractedText,
		&summary,
		&status,
		&rejectReason,
		&createdBy,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	doc.Status = Status(status)
	if extractedText.Valid {
		doc.ExtractedText = extractedText.String
	}
	if summary.Valid {
		doc.Summary = summary.String
	}
	if rejectReason.Valid {
		doc.RejectReason = rejectReason.String
	}
	if createdBy.Valid {
		doc.CreatedBy = createdBy.String
	}
	return doc, nil
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
