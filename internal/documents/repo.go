package documents

import "context"

// Repo defines persistence operations for documents and their assignments.
// It is the sole writer of document and assignment records.
type Repo interface {
	// Create inserts a new record. Failure aborts the upload.
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)

	// UpdateExtractedText and UpdateSummary are independent idempotent
	// partial updates; callers tolerate their failure.
	UpdateExtractedText(ctx context.Context, id, text string) error
	UpdateSummary(ctx context.Context, id, summary string) error

	// ListByStatus returns documents in the given state, newest first.
	ListByStatus(ctx context.Context, status Status) ([]Document, error)

	// Approve atomically sets the document approved and records one
	// assignment per user id, collapsing duplicates. Approving an already
	// approved document is not an error.
	Approve(ctx context.Context, id string, userIDs []string) error

	// Reject sets the document rejected and records the reason.
	Reject(ctx context.Context, id, reason string) error

	// ListVisibleFor returns approved documents assigned to the user. The
	// assignment intersection is evaluated here explicitly, never delegated
	// to a datastore-side policy.
	ListVisibleFor(ctx context.Context, userID string) ([]Document, error)
}
