package user

// Principal identifies the authenticated caller of a request.
type Principal struct {
	ProfileID string
	Email     string
	// SiteAdmin is set from the configured allowlist at startup, never from
	// request data.
	SiteAdmin bool
}
