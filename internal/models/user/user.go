package user

import "fmt"

// User is the authenticated principal. Tasks point at it through OwnerID.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	IsAdmin   bool   `json:"is_admin" db:"is_admin"`
}

func (u *User) IsSameUser(other *User) bool {
	return u != nil && other != nil && u.ID == other.ID
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
