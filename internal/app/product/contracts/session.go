package contracts

// Session is the authentication collaborator. The core only asks whether
// the user is signed in and asks it to sign out.
type Session interface {
	IsAuthenticated() bool
	Logout()
	// Token returns the bearer token attached to remote calls, or "".
	Token() string
	// Username returns the display name of the signed-in user.
	Username() string
}
