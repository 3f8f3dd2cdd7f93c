package domain

import "time"

type User struct {
	Id               UserId
	Email            Email
	Username         string
	Phone            string
	AvatarURL        string
	Role             Role
	VenueIds         Ids
	BookmarkedEvents Ids
	PassHash         string `json:"-"`
	CreatedAt        time.Time
}

// Viewer is the authenticated caller as carried through request context.
// Passed explicitly into services so authorization stays testable without
// a live identity provider.
type Viewer struct {
	Id    UserId
	Email Email
	Role  Role
}

func (v *Viewer) Admin() bool {
	return v != nil && v.Role == RoleAdmin
}

type Credentials struct {
	Email    Email
	Password Password
	Username string
}
