package constants

// ContextKey is a typed key for request-scoped values
type ContextKey string

const (
	CtxKeyRequestID ContextKey = "request_id"
	CtxKeyUserID    ContextKey = "user_id"
	CtxKeyUserRole  ContextKey = "user_role"
	CtxKeyToken     ContextKey = "bearer_token"
)

// Gin context keys set by the auth middleware
const (
	GinKeyUserID = "user_id"
	GinKeyRole   = "user_role"
	GinKeyToken  = "bearer_token"
)
