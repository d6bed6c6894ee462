package shipment

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

const codePrefix = "ENV"

var codePattern = regexp.MustCompile(`^ENV-\d{8}-[0-9A-F]{6}$`)

// Code is the human readable shipment identifier, for example "ENV-20261016-4F3A9C".
// The middle segment is the creation date and the trailing one six hex digits of a random UUID.
type Code string

// NewCode derives a code from the creation instant and a random seed identifier.
func NewCode(createdAt time.Time, seed kernel.UUID) Code {
	suffix := strings.ToUpper(strings.ReplaceAll(seed.String(), "-", ""))[:6]
	return Code(fmt.Sprintf("%s-%s-%s", codePrefix, createdAt.UTC().Format("20060102"), suffix))
}

// ParseCode validates the textual form.
func ParseCode(s string) (Code, error) {
	if !codePattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q does not match %s", s, codePattern))
	}
	return Code(s), nil
}

// Body returns the code without its "ENV-" prefix, for example "20261016-4F3A9C".
// Codes are unique, so the body is unique as well.
func (c Code) Body() string {
	return strings.TrimPrefix(string(c), codePrefix+"-")
}

func (c Code) String() string {
	return string(c)
}
