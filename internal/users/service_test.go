package users

import (
	"context"
	"testing"
)

func TestSyncFromLogin_AdminSeeding(t *testing.T) {
	svc := &Service{
		Repo:        NewMemoryRepo(),
		AdminEmails: []string{"Boss@corp.test"},
	}
	ctx := context.Background()

	boss, err := svc.SyncFromLogin(ctx, "google:1", "boss@corp.test", "The Boss")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if boss.Role != RoleAdmin {
		t.Fatalf("role = %q, want admin for listed email", boss.Role)
	}

	emp, err := svc.SyncFromLogin(ctx, "google:2", "emp@corp.test", "Employee")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if emp.Role != RoleEmployee {
		t.Fatalf("role = %q, want employee", emp.Role)
	}
}

func TestSyncFromLogin_RepeatLoginKeepsRole(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	// Seed as admin, then log in again with the email no longer listed.
	seed := &Service{Repo: repo, AdminEmails: []string{"boss@corp.test"}}
	if _, err := seed.SyncFromLogin(ctx, "google:1", "boss@corp.test", "The Boss"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := &Service{Repo: repo}
	user, err := svc.SyncFromLogin(ctx, "google:1", "boss@corp.test", "The Boss")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if user.Role != RoleAdmin {
		t.Fatalf("role = %q, repeat login must not demote an admin", user.Role)
	}
}

func TestRoleByID(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), AdminEmails: []string{"boss@corp.test"}}
	ctx := context.Background()

	if _, err := svc.SyncFromLogin(ctx, "google:1", "boss@corp.test", "The Boss"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	role, err := svc.RoleByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("role by id: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("role = %q, want admin", role)
	}

	role, err = svc.RoleByID(ctx, "unknown")
	if err == nil {
		t.Fatal("expected lookup error for unknown user")
	}
	if role != RoleEmployee {
		t.Fatalf("role = %q, unknown users must default to employee", role)
	}
}

func TestList_SortedByEmail(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	for _, u := range []struct{ id, email string }{
		{"google:2", "zed@corp.test"},
		{"google:1", "amy@corp.test"},
	} {
		if _, err := svc.SyncFromLogin(ctx, u.id, u.email, ""); err != nil {
			t.Fatalf("sync %s: %v", u.id, err)
		}
	}

	out, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 || out[0].Email != "amy@corp.test" || out[1].Email != "zed@corp.test" {
		t.Fatalf("list = %+v", out)
	}
}
