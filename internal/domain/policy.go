package domain

// Actor is the authenticated caller as decoded from the JWT claims.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccess reports whether the actor may read or write a record owned by
// ownerID: admins always, everyone else only their own records.
func (a Actor) CanAccess(ownerID string) bool {
	return a.Role == RoleAdmin || a.ID == ownerID
}
