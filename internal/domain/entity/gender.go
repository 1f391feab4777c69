package entity

// Gender is the declared gender of an account holder.
// Persisted as a smallint: 0 = female, 1 = male, 2 = unknown.
type Gender int16

const (
	// GenderFemale indicates a female account holder.
	GenderFemale Gender = 0
	// GenderMale indicates a male account holder.
	GenderMale Gender = 1
	// GenderUnknown indicates the account holder did not disclose a gender.
	GenderUnknown Gender = 2
)

// String returns the human-readable name of the gender.
func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "female"
	case GenderMale:
		return "male"
	default:
		return "unknown"
	}
}

// IsValid checks if the Gender is a valid value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderUnknown:
		return true
	default:
		return false
	}
}
