package domain

// Role is the effective permission a user holds on a workspace or board.
// Lists and cards never carry roles of their own; they resolve through
// their board.
type Role string

// Action is the minimum capability an operation requires.
type Action string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleOwner  Role = "owner"
)

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionManage Action = "manage"
)

// Allows reports whether the role satisfies the required action.
// read admits viewer and above, write admits editor and above,
// manage admits owner only.
func (r Role) Allows(a Action) bool {
	switch r {
	case RoleOwner:
		return true
	case RoleEditor:
		return a == ActionRead || a == ActionWrite
	case RoleViewer:
		return a == ActionRead
	default:
		return false
	}
}

// ValidRole reports whether s names one of the three known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleViewer, RoleEditor, RoleOwner:
		return true
	}
	return false
}

// RoleMap maps a user id to that user's role on a workspace or board.
// An empty map on a board means "inherit from the workspace"; a non-empty
// map is an explicit override.
type RoleMap map[uint64]Role

func (m RoleMap) Get(userID uint64) (Role, bool) {
	role, ok := m[userID]
	return role, ok
}

// Upsert returns a map with the entry set, allocating when the receiver
// is nil so callers can assign the result back to the model field.
func (m RoleMap) Upsert(userID uint64, role Role) RoleMap {
	if m == nil {
		m = make(RoleMap, 1)
	}
	m[userID] = role
	return m
}

func (m RoleMap) Remove(userID uint64) RoleMap {
	delete(m, userID)
	return m
}
