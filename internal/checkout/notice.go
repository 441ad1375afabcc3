package checkout

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient user-facing message, kept separate from field
// validation errors (coupon applied, address saved, submission failed).
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	Field   string     `json:"field,omitempty"`
}
