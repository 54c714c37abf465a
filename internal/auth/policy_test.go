package auth

import "testing"

func claimsFor(role string, employeeID int) Claims {
	return Claims{UserId: 1, EmployeeID: employeeID, Role: role}
}

func TestCanAccessWrites(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		self    int
		owner   int
		action  Action
		allowed bool
	}{
		{"employee writes own attendance", RoleEmployee, 7, 7, ActionAttendanceWrite, true},
		{"employee writes someone else", RoleEmployee, 7, 8, ActionAttendanceWrite, false},
		{"manager writes someone else", RoleManager, 7, 8, ActionAttendanceWrite, true},
		{"admin writes attendance", RoleAdmin, 0, 8, ActionAttendanceWrite, false},
		{"employee creates own leave", RoleEmployee, 7, 7, ActionLeaveCreate, true},
		{"employee creates leave for another", RoleEmployee, 7, 8, ActionLeaveCreate, false},
		{"manager creates leave for another", RoleManager, 7, 8, ActionLeaveCreate, true},
		{"admin creates leave", RoleAdmin, 0, 8, ActionLeaveCreate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccess(claimsFor(tt.role, tt.self), tt.owner, tt.action)
			if got != tt.allowed {
				t.Fatalf("CanAccess(%s, owner=%d, %v) = %v, want %v", tt.role, tt.owner, tt.action, got, tt.allowed)
			}
		})
	}
}

func TestCanAccessReads(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		self    int
		owner   int
		action  Action
		allowed bool
	}{
		{"employee reads own salary", RoleEmployee, 7, 7, ActionSalaryRead, true},
		{"employee reads another salary", RoleEmployee, 7, 8, ActionSalaryRead, false},
		{"manager reads any salary", RoleManager, 7, 8, ActionSalaryRead, true},
		{"admin reads any attendance", RoleAdmin, 0, 8, ActionAttendanceRead, true},
		{"employee reads own profile", RoleEmployee, 7, 7, ActionEmployeeRead, true},
		{"employee reads another profile", RoleEmployee, 7, 8, ActionEmployeeRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccess(claimsFor(tt.role, tt.self), tt.owner, tt.action)
			if got != tt.allowed {
				t.Fatalf("CanAccess(%s, owner=%d, %v) = %v, want %v", tt.role, tt.owner, tt.action, got, tt.allowed)
			}
		})
	}
}

func TestCanAccessDecisions(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		action  Action
		allowed bool
	}{
		{"employee decides leave", RoleEmployee, ActionLeaveDecide, false},
		{"manager decides leave", RoleManager, ActionLeaveDecide, true},
		{"admin decides leave", RoleAdmin, ActionLeaveDecide, true},
		{"employee writes salary", RoleEmployee, ActionSalaryWrite, false},
		{"manager writes salary", RoleManager, ActionSalaryWrite, true},
		{"admin writes salary", RoleAdmin, ActionSalaryWrite, true},
		{"manager edits employees", RoleManager, ActionEmployeeWrite, false},
		{"admin edits employees", RoleAdmin, ActionEmployeeWrite, true},
		{"employee deletes leave", RoleEmployee, ActionLeaveDelete, false},
		{"manager deletes leave", RoleManager, ActionLeaveDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccess(claimsFor(tt.role, 7), 8, tt.action)
			if got != tt.allowed {
				t.Fatalf("CanAccess(%s, %v) = %v, want %v", tt.role, tt.action, got, tt.allowed)
			}
		})
	}
}

func TestCanDecideLeave(t *testing.T) {
	tests := []struct {
		name    string
		decider string
		owner   string
		allowed bool
	}{
		{"manager decides employee leave", RoleManager, RoleEmployee, true},
		{"manager decides manager leave", RoleManager, RoleManager, false},
		{"admin decides manager leave", RoleAdmin, RoleManager, true},
		{"admin decides employee leave", RoleAdmin, RoleEmployee, true},
		{"employee decides anything", RoleEmployee, RoleEmployee, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanDecideLeave(tt.decider, tt.owner)
			if got != tt.allowed {
				t.Fatalf("CanDecideLeave(%s, %s) = %v, want %v", tt.decider, tt.owner, got, tt.allowed)
			}
		})
	}
}

func TestAuthorized(t *testing.T) {
	c := claimsFor(RoleManager, 3)

	if !c.Authorized() {
		t.Fatalf("no role restriction should always be authorized")
	}
	if !c.Authorized(RoleManager, RoleAdmin) {
		t.Fatalf("manager should match manager|admin")
	}
	if c.Authorized(RoleAdmin) {
		t.Fatalf("manager must not match admin-only")
	}
}
