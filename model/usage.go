package model

import "strings"

// Usage is the requirement classification of a loop, segment or element.
type Usage string

const (
	Mandatory   Usage = "M"
	Optional    Usage = "O"
	Conditional Usage = "C"
)

// ParseUsage maps a raw requirement token onto a Usage. It never fails:
// unknown or empty tokens are Optional.
func ParseUsage(token string) Usage {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "M":
		return Mandatory
	case "O":
		return Optional
	case "C", "X":
		return Conditional
	default:
		return Optional
	}
}

// MinUse returns the minimum occurrence implied by u.
func (u Usage) MinUse() int {
	if u == Mandatory {
		return 1
	}
	return 0
}

func (u Usage) String() string {
	switch u {
	case Mandatory:
		return "Mandatory"
	case Conditional:
		return "Conditional"
	default:
		return "Optional"
	}
}
