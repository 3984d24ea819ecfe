package auth

import (
	"context"
	"testing"
)

func TestAdminHasEveryPermission(t *testing.T) {
	perms := Permissions{}
	allowed, err := perms.HasPermission(context.Background(), RoleAdmin, PermLedgerDelete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("expected admin to hold ledger.delete")
	}
}

func TestEmployeeCannotDeleteLedgerEntries(t *testing.T) {
	perms := Permissions{}
	allowed, err := perms.HasPermission(context.Background(), RoleEmployee, PermLedgerDelete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("expected employee to be denied ledger.delete")
	}
}

func TestManagerCanRunEvaluations(t *testing.T) {
	perms := Permissions{}
	allowed, err := perms.HasPermission(context.Background(), RoleManager, PermEvaluateRun)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("expected manager to hold evaluate.run")
	}
}
