package domain

// Role identifies the privilege level of an authenticated user.
// Roles are assigned by the external identity provider and carried in
// the provider's private metadata.
type Role string

const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

// AuthContext is the authenticated identity for a single operation.
// Every service operation that needs an identity takes it as an explicit
// parameter; the HTTP boundary is responsible for building it from the
// identity provider so services never reach into a global.
type AuthContext struct {
	UserID string
	Role   Role
}

var (
	ErrUnauthenticated = &Error{Code: EUNAUTHORIZED, Message: "Unauthenticated."}
	ErrSellerRequired  = &Error{Code: EFORBIDDEN, Message: "Unauthorized Access: Seller Privileges Required."}
)

// Authenticated reports whether the context carries a user identity.
func (a AuthContext) Authenticated() bool {
	return a.UserID != ""
}

// RequireUser returns ErrUnauthenticated when no identity is present.
func (a AuthContext) RequireUser() error {
	if !a.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// RequireSeller returns an error unless the context carries a seller identity.
// Admins do not implicitly pass seller checks; store ownership is verified
// separately by the services.
func (a AuthContext) RequireSeller() error {
	if err := a.RequireUser(); err != nil {
		return err
	}
	if a.Role != RoleSeller {
		return ErrSellerRequired
	}
	return nil
}
