package composer

// OutcomeKind tags the result of a submission attempt.
type OutcomeKind int

const (
	// OutcomeSuccess means the post was written and all photos uploaded.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeValidationError means the form was rejected locally.
	OutcomeValidationError
	// OutcomeNetworkError means the post write failed; nothing was kept.
	OutcomeNetworkError
	// OutcomePartialSuccess means the post exists but its photo upload
	// failed. The post is not rolled back.
	OutcomePartialSuccess
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationError:
		return "validation error"
	case OutcomeNetworkError:
		return "network error"
	case OutcomePartialSuccess:
		return "partial success"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one submission.
type Outcome struct {
	Kind   OutcomeKind
	PostID int64
	// Message carries the validation or submission failure text.
	Message string
	// PhotoUploadError is set on OutcomePartialSuccess.
	PhotoUploadError error
}

// Succeeded reports whether the post was written, with or without its
// photos.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomePartialSuccess
}
