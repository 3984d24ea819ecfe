package auth

import "context"

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

const (
	PermContractsRead   = "contracts.read"
	PermContractsWrite  = "contracts.write"
	PermEmployeesRead   = "employees.read"
	PermEmployeesWrite  = "employees.write"
	PermLedgerRead      = "ledger.read"
	PermLedgerWrite     = "ledger.write"
	PermLedgerDelete    = "ledger.delete"
	PermEvaluateRun     = "evaluate.run"
	PermReportsRead     = "reports.read"
	PermReportsWrite    = "reports.write"
	PermReportsFinalize = "reports.finalize"
	PermAuditRead       = "audit.read"
)

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermLedgerRead,
		PermLedgerWrite,
		PermReportsRead,
	},
	RoleManager: {
		PermContractsRead,
		PermEmployeesRead,
		PermLedgerRead,
		PermLedgerWrite,
		PermEvaluateRun,
		PermReportsRead,
	},
	RoleHR: {
		PermContractsRead,
		PermContractsWrite,
		PermEmployeesRead,
		PermEmployeesWrite,
		PermLedgerRead,
		PermLedgerWrite,
		PermLedgerDelete,
		PermEvaluateRun,
		PermReportsRead,
		PermReportsWrite,
		PermReportsFinalize,
		PermAuditRead,
	},
}

// Permissions answers role/permission checks from the static table above.
// Admin passes every check.
type Permissions struct{}

func (Permissions) HasPermission(ctx context.Context, roleName, permission string) (bool, error) {
	if roleName == RoleAdmin {
		return true, nil
	}
	for _, granted := range RolePermissions[roleName] {
		if granted == permission {
			return true, nil
		}
	}
	return false, nil
}
