package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

const (
	numberPrefix     = "SM"
	numberDateLayout = "060102"
	numberLength     = len(numberPrefix) + len(numberDateLayout) + 2 + 4

	MinSequence = 1
	MaxSequence = 9999
)

var ErrNumberIsNotConstructed = errs.NewValueIsRequiredError("order number must be created via NewNumber or ParseNumber")

// Number is the human-readable order identifier:
// "SM" + YYMMDD + two-letter branch code + four-digit daily sequence,
// e.g. SM250314JK0007. Sequences are scoped to branch and date.
type Number struct {
	date       time.Time
	branchCode string
	sequence   int
	guard      guard.ConstructorGuard
}

// NewNumber builds the number for the given date, branch code and sequence.
// The code is upper-cased; it must be exactly two ASCII letters.
func NewNumber(date time.Time, branchCode string, sequence int) (Number, error) {
	code, err := NormalizeBranchCode(branchCode)
	if err != nil {
		return Number{}, err
	}
	if sequence < MinSequence || sequence > MaxSequence {
		return Number{}, errs.NewValueIsOutOfRangeError("sequence", sequence, MinSequence, MaxSequence)
	}

	return Number{
		date:       truncateToDay(date),
		branchCode: code,
		sequence:   sequence,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ParseNumber reads a number previously produced by String.
func ParseNumber(s string) (Number, error) {
	if len(s) != numberLength || !strings.HasPrefix(s, numberPrefix) {
		return Number{}, errs.NewValueIsInvalidError(fmt.Sprintf("order number %q", s))
	}

	rest := s[len(numberPrefix):]
	date, err := time.ParseInLocation(numberDateLayout, rest[:6], time.UTC)
	if err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("order number %q", s), err)
	}
	sequence, err := strconv.Atoi(rest[8:])
	if err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("order number %q", s), err)
	}

	return NewNumber(date, rest[6:8], sequence)
}

// NormalizeBranchCode upper-cases code and checks it is two letters.
func NormalizeBranchCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return "", errs.NewValueIsInvalidError(fmt.Sprintf("branch code %q must have two letters", code))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", errs.NewValueIsInvalidError(fmt.Sprintf("branch code %q must have two letters", code))
		}
	}
	return code, nil
}

func (n Number) String() string {
	return fmt.Sprintf("%s%s%s%04d", numberPrefix, n.date.Format(numberDateLayout), n.branchCode, n.sequence)
}

func (n Number) Date() time.Time       { return n.date }
func (n Number) BranchCode() string    { return n.branchCode }
func (n Number) Sequence() int         { return n.sequence }
func (n Number) IsEqual(o Number) bool { return n.String() == o.String() }

func (n Number) Validate() error {
	return n.guard.Validate(ErrNumberIsNotConstructed)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
