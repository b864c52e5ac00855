package cli

// Session carries the identity of the authenticated user. It is passed
// explicitly into every screen that needs an actor; there is no ambient
// current-user state.
type Session struct {
	Username    string
	DisplayName string
}
