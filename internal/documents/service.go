package documents

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/extract"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/storage/object"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/telemetry"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/summarize"
)

// Summarizer produces a best-effort summary; it returns "" on any failure.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// Service contains the intake and review logic for documents.
type Service struct {
	Store      object.ObjectStore
	Repo       Repo
	Summarizer Summarizer
}

// Upload runs the intake pipeline: store the file, create the pending
// record, then best-effort extraction and summarization. The returned
// document exists and is reviewable even when both best-effort steps failed;
// the caller is never made to wait on summarization succeeding, only on the
// document existing.
func (s *Service) Upload(ctx context.Context, caller Identity, title, fileName string, r io.Reader) (Document, error) {
	if !caller.IsAdmin() {
		return Document{}, ErrForbidden
	}
	if strings.TrimSpace(fileName) == "" {
		return Document{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	if len(data) == 0 {
		return Document{}, ErrInvalidInput
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = fileName
	}

	stored, err := s.Store.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		// No document record yet, so nothing is orphaned in the datastore.
		return Document{}, err
	}

	doc := Document{
		ID:        uuid.NewString(),
		Title:     title,
		FileURL:   stored.URL,
		Status:    StatusPending,
		CreatedBy: caller.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		// The stored blob stays behind; acceptable, not cleaned up here.
		return Document{}, err
	}

	// Extraction and summarization are best effort from here on: their
	// failure, or a failed persistence of their result, must not fail the
	// upload that already created the document.
	text := extract.Text(data)
	doc.ExtractedText = text
	if err := s.Repo.UpdateExtractedText(ctx, doc.ID, text); err != nil {
		telemetry.Error("document.extracted_text_persist_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}

	input := text
	if strings.TrimSpace(input) == "" {
		input = summarize.FallbackDescription(doc.Title, doc.FileURL)
	}
	summary := s.Summarizer.Summarize(ctx, input)
	doc.Summary = summary
	if err := s.Repo.UpdateSummary(ctx, doc.ID, summary); err != nil {
		telemetry.Error("document.summary_persist_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}

	return doc, nil
}

// Pending lists documents awaiting review, newest first. Admin only.
func (s *Service) Pending(ctx context.Context, caller Identity) ([]Document, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.Repo.ListByStatus(ctx, StatusPending)
}

// Approve transitions the document to approved and grants visibility to the
// given users. Approving an already approved document, or re-sending the
// same user list, is not an error.
func (s *Service) Approve(ctx context.Context, caller Identity, docID string, userIDs []string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if strings.TrimSpace(docID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Approve(ctx, docID, dedupe(userIDs))
}

// Reject transitions the document to rejected, recording the reason.
func (s *Service) Reject(ctx context.Context, caller Identity, docID, reason string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if strings.TrimSpace(docID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Reject(ctx, docID, strings.TrimSpace(reason))
}

// VisibleFor returns approved documents assigned to userID. Any resolved
// identity may ask; anonymous callers are rejected.
func (s *Service) VisibleFor(ctx context.Context, caller Identity, userID string) ([]Document, error) {
	if !caller.Resolved() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListVisibleFor(ctx, userID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
