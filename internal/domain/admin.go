package domain

// The synthetic Administrator identity. Login checks this pair before
// consulting any stored account, so the admin can always get in even
// when the registered-user lists are empty or corrupt.
const (
	AdminName     = "Administrator"
	AdminUsername = "admin"
	AdminPassword = "admin123"
	AdminEmail    = "admin@vertixpc.local"
)

// AdminUser returns the in-memory admin record. It is never appended to
// the registered-user lists.
func AdminUser() User {
	return User{
		ID:       "admin",
		Name:     AdminName,
		Username: AdminUsername,
		Email:    AdminEmail,
		IsAdmin:  true,
	}
}
