package presentation

const (
	TTag      = "t"
	AuthKey   = "Authorization"
	TypeKey   = "Content-Type"
	ExpTag    = "expiration"
	PK        = "pk"
	ReasonTag = "X-Reason"
)

// Actions carried in the t tag of an authorization event.
const (
	ActionUpload   = "upload"
	ActionList     = "list"
	ActionOptimize = "optimize"
	ActionMove     = "move"
	ActionDelete   = "delete"
)
