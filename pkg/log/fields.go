package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches internal/middleware/auth.go keys)
	FieldUserID   = "user_id"
	FieldUsername = "username"

	// Domain
	FieldTweetID  = "tweet_id"
	FieldAuthorID = "author_id"
	FieldTargetID = "target_id"
	FieldMediaKey = "media_key"

	// Service
	FieldService = "service"
)
