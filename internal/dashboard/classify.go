package dashboard

// Display states used by the expiry classification.
const (
	StateError   = "Error"
	StateWarning = "Warning"
	StateSuccess = "Success"

	StatusActive  = "Active"
	StatusExpired = "Expired"
)

// Classification is the severity/status triple derived from a commitment's
// remaining days. ExpiryState and Status are independent classifications of
// the same day count and can disagree: 15 days left is ExpiryState Error but
// Status Active.
type Classification struct {
	ExpiryState string
	Status      string
	StatusState string
}

// ClassifyExpiry maps a day count to its classification. Boundary values
// belong to the lower branch: 30 is Error, 90 is Warning, 0 is Expired.
func ClassifyExpiry(days int) Classification {
	var expiryState string
	switch {
	case days <= 30:
		expiryState = StateError
	case days <= 90:
		expiryState = StateWarning
	default:
		expiryState = StateSuccess
	}

	cls := Classification{ExpiryState: expiryState}
	if days > 0 {
		cls.Status = StatusActive
		cls.StatusState = StateSuccess
	} else {
		cls.Status = StatusExpired
		cls.StatusState = StateError
	}
	return cls
}
