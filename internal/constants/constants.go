package constants

// Pagination bounds
const (
	MinPage         = 1
	DefaultPageSize = 13
	MaxPageSize     = 100
)

// Session / context keys
const (
	SessionCookieName = "mapping_session"
	ContextKeyUserID  = "user_id"
)

// APIKeyBytes is the number of random bytes in a generated API key.
const APIKeyBytes = 16
