package auth

// Identity represents a verified external identity assertion. It contains
// facts extracted from the provider's token only, no decisions, and is
// never persisted.
type Identity struct {
	Subject       string // provider-scoped unique user identifier (sub)
	Email         string // email returned by the provider
	EmailVerified bool   // whether the provider asserts email ownership
	Name          string // display name, may be empty
	Picture       string // avatar URL, may be empty
}
