package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/storage/object"
)

type fakeStore struct {
	saves    int
	failSave bool
}

func (f *fakeStore) Save(ctx context.Context, fileName string, r io.Reader) (object.Stored, error) {
	if f.failSave {
		return object.Stored{}, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return object.Stored{}, err
	}
	f.saves++
	return object.Stored{
		Key:       "abc123_" + fileName,
		URL:       "http://files.test/abc123_" + fileName,
		SizeBytes: int64(len(data)),
		MimeType:  "application/pdf",
	}, nil
}

func (f *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type fakeSummarizer struct {
	inputs []string
	out    string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) string {
	f.inputs = append(f.inputs, text)
	return f.out
}

var (
	admin    = Identity{UserID: "admin-1", Role: "admin"}
	employee = Identity{UserID: "emp-1", Role: "employee"}
)

func newTestService() (*Service, *MemoryRepo, *fakeStore, *fakeSummarizer) {
	repo := NewMemoryRepo()
	store := &fakeStore{}
	sum := &fakeSummarizer{out: "a summary"}
	svc := &Service{Store: store, Repo: repo, Summarizer: sum}
	return svc, repo, store, sum
}

func TestUpload_NonAdminForbiddenAndNoMutation(t *testing.T) {
	svc, repo, store, _ := newTestService()

	for _, caller := range []Identity{employee, {}} {
		_, err := svc.Upload(context.Background(), caller, "Q1 Report", "report.pdf", strings.NewReader("%PDF-1.4 data"))
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden for %+v, got %v", caller, err)
		}
	}
	if store.saves != 0 {
		t.Fatalf("expected no stored files, got %d", store.saves)
	}
	docs, _ := repo.ListByStatus(context.Background(), StatusPending)
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestUpload_EmptyFileRejected(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, err := svc.Upload(context.Background(), admin, "t", "report.pdf", strings.NewReader("")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty file, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), admin, "t", "", strings.NewReader("data")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing file name, got %v", err)
	}
}

func TestUpload_StoreFailureAbortsWithoutDocument(t *testing.T) {
	svc, repo, store, _ := newTestService()
	store.failSave = true

	_, err := svc.Upload(context.Background(), admin, "Q1 Report", "report.pdf", strings.NewReader("data"))
	if err == nil || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrForbidden) {
		t.Fatalf("expected storage error, got %v", err)
	}
	docs, _ := repo.ListByStatus(context.Background(), StatusPending)
	if len(docs) != 0 {
		t.Fatalf("expected no orphaned document record, got %d", len(docs))
	}
}

func TestUpload_SucceedsDespiteFailedExtraction(t *testing.T) {
	svc, repo, _, sum := newTestService()

	// Not a parsable PDF, so extraction yields nothing and the summarizer
	// must still be attempted with the fallback description.
	doc, err := svc.Upload(context.Background(), admin, "Q1 Report", "report.pdf", strings.NewReader("not a pdf at all"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if doc.Status != StatusPending {
		t.Fatalf("status = %s, want pending", doc.Status)
	}
	if doc.Title != "Q1 Report" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.FileURL == "" {
		t.Fatal("expected a file URL")
	}

	stored, err := repo.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get stored doc: %v", err)
	}
	if stored.Status != StatusPending {
		t.Fatalf("stored status = %s, want pending", stored.Status)
	}
	if stored.Summary != "a summary" {
		t.Fatalf("stored summary = %q", stored.Summary)
	}

	if len(sum.inputs) != 1 {
		t.Fatalf("expected 1 summarizer call, got %d", len(sum.inputs))
	}
	if !strings.Contains(sum.inputs[0], doc.FileURL) {
		t.Fatalf("fallback description should reference the file URL, got %q", sum.inputs[0])
	}
	if !strings.Contains(sum.inputs[0], "Q1 Report") {
		t.Fatalf("fallback description should reference the title, got %q", sum.inputs[0])
	}
}

func TestUpload_TitleDefaultsToFileName(t *testing.T) {
	svc, _, _, _ := newTestService()

	doc, err := svc.Upload(context.Background(), admin, "  ", "handbook.pdf", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.Title != "handbook.pdf" {
		t.Fatalf("title = %q, want handbook.pdf", doc.Title)
	}
}

func TestApprove_IdempotentAssignments(t *testing.T) {
	svc, repo, _, _ := newTestService()

	doc, err := svc.Upload(context.Background(), admin, "Policy", "policy.pdf", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	userIDs := []string{"u1", "u2", "u1", ""}
	if err := svc.Approve(context.Background(), admin, doc.ID, userIDs); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := svc.Approve(context.Background(), admin, doc.ID, userIDs); err != nil {
		t.Fatalf("second approve: %v", err)
	}

	if got := repo.AssignmentCount(doc.ID); got != 2 {
		t.Fatalf("assignment count = %d, want 2", got)
	}

	stored, _ := repo.GetByID(context.Background(), doc.ID)
	if stored.Status != StatusApproved {
		t.Fatalf("status = %s, want approved", stored.Status)
	}
}

func TestApprove_RequiresAdmin(t *testing.T) {
	svc, repo, _, _ := newTestService()

	doc, _ := svc.Upload(context.Background(), admin, "Policy", "policy.pdf", strings.NewReader("data"))

	if err := svc.Approve(context.Background(), employee, doc.ID, []string{"u1"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), doc.ID)
	if stored.Status != StatusPending {
		t.Fatalf("status = %s, want pending after forbidden approve", stored.Status)
	}
}

func TestApprove_UnknownDocument(t *testing.T) {
	svc, _, _, _ := newTestService()
	if err := svc.Approve(context.Background(), admin, "missing", []string{"u1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVisibility_RoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, admin, "Policy", "policy.pdf", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Approve(ctx, admin, doc.ID, []string{"u1", "u2"}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	for _, userID := range []string{"u1", "u2"} {
		visible, err := svc.VisibleFor(ctx, Identity{UserID: userID, Role: "employee"}, userID)
		if err != nil {
			t.Fatalf("visible for %s: %v", userID, err)
		}
		if len(visible) != 1 || visible[0].ID != doc.ID {
			t.Fatalf("expected document visible for %s, got %+v", userID, visible)
		}
		if visible[0].Status != StatusApproved {
			t.Fatalf("visible status = %s, want approved", visible[0].Status)
		}
	}

	visible, err := svc.VisibleFor(ctx, Identity{UserID: "u3", Role: "employee"}, "u3")
	if err != nil {
		t.Fatalf("visible for u3: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected no documents for unassigned user, got %d", len(visible))
	}
}

func TestVisibility_PendingDocumentsHidden(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Upload(ctx, admin, "Draft", "draft.pdf", strings.NewReader("data")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	visible, err := svc.VisibleFor(ctx, Identity{UserID: "u1", Role: "employee"}, "u1")
	if err != nil {
		t.Fatalf("visible: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("pending document must not be visible, got %d", len(visible))
	}
}

func TestVisibility_AnonymousForbidden(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.VisibleFor(context.Background(), Identity{}, "u1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for anonymous caller, got %v", err)
	}
}

func TestReject_RecordsReason(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	doc, _ := svc.Upload(ctx, admin, "Policy", "policy.pdf", strings.NewReader("data"))

	if err := svc.Reject(ctx, admin, doc.ID, "wrong department"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	stored, _ := repo.GetByID(ctx, doc.ID)
	if stored.Status != StatusRejected {
		t.Fatalf("status = %s, want rejected", stored.Status)
	}
	if stored.RejectReason != "wrong department" {
		t.Fatalf("reason = %q", stored.RejectReason)
	}

	docs, _ := svc.Pending(ctx, admin)
	for _, d := range docs {
		if d.ID == doc.ID {
			t.Fatal("rejected document still listed as pending")
		}
	}
}

func TestPending_RequiresAdmin(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.Pending(context.Background(), employee); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
