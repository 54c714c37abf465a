package auth

// Action enumerates everything the API can do to a role-guarded resource.
type Action int

const (
	ActionAttendanceRead Action = iota
	ActionAttendanceWrite
	ActionLeaveRead
	ActionLeaveCreate
	ActionLeaveDecide
	ActionLeaveDelete
	ActionSalaryRead
	ActionSalaryWrite
	ActionEmployeeRead
	ActionEmployeeWrite
)

// CanAccess is the single access predicate consulted by every repository
// operation. ownerEmployeeID is the employee the resource belongs to; it is
// ignored for actions that are not ownership-scoped. Unknown roles and unknown
// actions are denied.
func CanAccess(claims Claims, ownerEmployeeID int, action Action) bool {
	switch action {
	case ActionAttendanceWrite, ActionLeaveCreate:
		// Check-in/check-out/absent and leave self-requests: employees act on
		// themselves, managers may act for their team. Admin accounts have no
		// attendance of their own.
		switch claims.Role {
		case RoleEmployee:
			return claims.EmployeeID != 0 && claims.EmployeeID == ownerEmployeeID
		case RoleManager:
			return true
		case RoleAdmin:
			return action == ActionLeaveCreate
		}
		return false

	case ActionAttendanceRead, ActionLeaveRead, ActionSalaryRead, ActionEmployeeRead:
		switch claims.Role {
		case RoleEmployee:
			return claims.EmployeeID != 0 && claims.EmployeeID == ownerEmployeeID
		case RoleManager, RoleAdmin:
			return true
		}
		return false

	case ActionLeaveDecide, ActionLeaveDelete, ActionSalaryWrite:
		return claims.Role == RoleManager || claims.Role == RoleAdmin

	case ActionEmployeeWrite:
		return claims.Role == RoleAdmin
	}

	return false
}

// CanDecideLeave applies the escalation rule on top of CanAccess: a manager's
// own leave can only be decided by an admin.
func CanDecideLeave(deciderRole, ownerRole string) bool {
	if deciderRole != RoleManager && deciderRole != RoleAdmin {
		return false
	}
	if ownerRole == RoleManager && deciderRole != RoleAdmin {
		return false
	}
	return true
}
