package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured and in
// tests. It mirrors the transactional semantics of PGRepo: approve either
// applies fully or not at all, and duplicate assignments collapse.
type MemoryRepo struct {
	mu          sync.RWMutex
	docs        map[string]Document
	assignments map[string]map[string]time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs:        make(map[string]Document),
		assignments: make(map[string]map[string]time.Time),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !doc.Status.Valid() {
		doc.Status = StatusPending
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) UpdateExtractedText(ctx context.Context, id, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil
	}
	doc.ExtractedText = text
	r.docs[id] = doc
	return nil
}

func (r *MemoryRepo) UpdateSummary(ctx context.Context, id, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil
	}
	doc.Summary = summary
	r.docs[id] = doc
	return nil
}

func (r *MemoryRepo) ListByStatus(ctx context.Context, status Status) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Document
	for _, doc := range r.docs {
		if doc.Status == status {
			out = append(out, doc)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepo) Approve(ctx context.Context, id string, userIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.Status = StatusApproved
	doc.RejectReason = ""
	r.docs[id] = doc

	granted := r.assignments[id]
	if granted == nil {
		granted = make(map[string]time.Time)
		r.assignments[id] = granted
	}
	now := time.Now().UTC()
	for _, userID := range userIDs {
		if userID == "" {
			continue
		}
		if _, exists := granted[userID]; !exists {
			granted[userID] = now
		}
	}
	return nil
}

func (r *MemoryRepo) Reject(ctx context.Context, id, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.Status = StatusRejected
	doc.RejectReason = reason
	r.docs[id] = doc
	return nil
}

func (r *MemoryRepo) ListVisibleFor(ctx context.Context, userID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Document
	for id, doc := range r.docs {
		if doc.Status != StatusApproved {
			continue
		}
		if _, assigned := r.assignments[id][userID]; !assigned {
			continue
		}
		out = append(out, doc)
	}
	sortNewestFirst(out)
	return out, nil
}

// AssignmentCount reports how many assignment rows exist for a document.
// Used by tests to assert idempotence.
func (r *MemoryRepo) AssignmentCount(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assignments[id])
}

func sortNewestFirst(docs []Document) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}

var _ Repo = (*MemoryRepo)(nil)
