package checklist

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Grade is the overall condition assessed by the reviewer.
type Grade string

const (
	Excellent Grade = "excellent"
	Good      Grade = "good"
	Fair      Grade = "fair"
	Poor      Grade = "poor"
)

// ParseGrade accepts one of the four grade names.
func ParseGrade(s string) (Grade, error) {
	g := Grade(s)
	switch g {
	case Excellent, Good, Fair, Poor:
		return g, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("condition", fmt.Errorf("%q is not a valid grade", s))
	}
}

func (g Grade) String() string {
	return string(g)
}
