package usecase

// OutcomeKind tags the classified result of processing one inbound event.
type OutcomeKind int

const (
	OutcomeAccepted OutcomeKind = iota
	OutcomeDuplicate
	OutcomeInvalid
	OutcomeDeliveryFailed
	OutcomeServerError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDeliveryFailed:
		return "delivery_failed"
	default:
		return "server_error"
	}
}

// Outcome is the result of one processing attempt. Exactly one variant holds;
// the extra fields are meaningful only for the kind that carries them.
type Outcome struct {
	Kind             OutcomeKind
	AlreadyDelivered bool              // Duplicate only
	FieldErrors      []ValidationError // Invalid only
	Err              error             // DeliveryFailed / ServerError
}

func AcceptedOutcome() Outcome {
	return Outcome{Kind: OutcomeAccepted}
}

func DuplicateOutcome(alreadyDelivered bool) Outcome {
	return Outcome{Kind: OutcomeDuplicate, AlreadyDelivered: alreadyDelivered}
}

func InvalidOutcome(fieldErrors []ValidationError) Outcome {
	return Outcome{Kind: OutcomeInvalid, FieldErrors: fieldErrors}
}

func DeliveryFailedOutcome(err error) Outcome {
	return Outcome{Kind: OutcomeDeliveryFailed, Err: err}
}

func ServerErrorOutcome(err error) Outcome {
	return Outcome{Kind: OutcomeServerError, Err: err}
}
