package plan

import "strings"

// Tier is a user's subscription level.
type Tier string

const (
	Free Tier = "free"
	Pro  Tier = "pro"
)

// Parse normalizes a stored tier value. Anything unrecognized is free.
func Parse(raw string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case Pro:
		return Pro
	default:
		return Free
	}
}

// IsPro reports whether the tier unlocks paid features.
func (t Tier) IsPro() bool {
	return t == Pro
}

func (t Tier) String() string {
	return string(t)
}
