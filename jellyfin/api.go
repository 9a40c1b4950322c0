package jellyfin

import (
	"context"
)

// UserAPI defines the user management surface of the client.
type UserAPI interface {
	// Users retrieves users filtered by hidden and disabled state.
	Users(ctx context.Context, isHidden, isDisabled bool) ([]User, error)

	// UserByID fetches a single user by id.
	UserByID(ctx context.Context, id string) (*User, error)

	// Me retrieves the user the current session belongs to.
	Me(ctx context.Context) (*User, error)

	// PublicUsers retrieves the server's login-screen users.
	PublicUsers(ctx context.Context) ([]User, error)

	// CreateUser creates a new user.
	CreateUser(ctx context.Context, username, password string) (*User, error)

	// DeleteUser deletes a user by id.
	DeleteUser(ctx context.Context, id string) error

	// UpdateUser replaces a user's profile record.
	UpdateUser(ctx context.Context, id string, user User) error

	// UpdateUserConfiguration replaces a user's configuration.
	UpdateUserConfiguration(ctx context.Context, id string, conf UserConfiguration) error

	// UpdateUserPassword sets a new password for a user.
	UpdateUserPassword(ctx context.Context, id, newPassword string) error

	// UpdateUserPolicy replaces a user's policy.
	UpdateUserPolicy(ctx context.Context, id string, policy UserPolicy) error
}

// AuthAPI defines the authentication surface of the client.
type AuthAPI interface {
	// AuthenticateUserByName authenticates with username and password.
	AuthenticateUserByName(ctx context.Context, username, password string) (*Session, error)

	// AuthenticateUser authenticates with a user id and password.
	AuthenticateUser(ctx context.Context, userID, password string) (*Session, error)

	// CurrentSession returns the stored session, nil when unauthenticated.
	CurrentSession() *Session

	// ForgotPassword starts the forgot-password flow for a username.
	ForgotPassword(ctx context.Context, username string) error

	// RedeemForgotPasswordPin redeems a forgot-password PIN.
	RedeemForgotPasswordPin(ctx context.Context, pin string) error
}

// Interface conformance checks.
var (
	_ UserAPI = (*Client)(nil)
	_ AuthAPI = (*Client)(nil)
)
