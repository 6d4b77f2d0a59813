package entities

// Actor is the capability set of the user behind an interaction.
// It is computed once per interaction and passed to permission guards.
type Actor struct {
	UserID          int64
	IsAdministrator bool
	RoleIDs         map[int64]struct{}
}

// NewActor builds an actor from a user id, the admin flag and the member's role ids
func NewActor(userID int64, isAdmin bool, roleIDs ...int64) Actor {
	roles := make(map[int64]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		roles[id] = struct{}{}
	}
	return Actor{
		UserID:          userID,
		IsAdministrator: isAdmin,
		RoleIDs:         roles,
	}
}

// HasRole checks role membership
func (a Actor) HasRole(roleID int64) bool {
	_, ok := a.RoleIDs[roleID]
	return ok
}

// CanManageHub reports whether the actor may set up the hub or assign the banker role
func (a Actor) CanManageHub() bool {
	return a.IsAdministrator
}

// CanOperateConsole reports whether the actor may use the banker control panel.
// bankerRoleID is nil when the guild has no banker role configured.
func (a Actor) CanOperateConsole(bankerRoleID *int64) bool {
	if a.IsAdministrator {
		return true
	}
	return bankerRoleID != nil && a.HasRole(*bankerRoleID)
}
