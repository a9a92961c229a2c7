// package models defines the data model for the Better companion
package models

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidRecord is wrapped by every Validate failure.
var ErrInvalidRecord = errors.New("invalid record")

// Validator is implemented by records that can check their required fields.
type Validator interface {
	Validate() error
}

// Keyed is implemented by records with a uniqueness key within a list.
type Keyed interface {
	Key() string
}

// CompareIDs orders dotted ids segment by segment, numerically where both segments are numbers.
//
// "1.2" < "1.10" < "2.1"; non-numeric segments compare lexicographically.
func CompareIDs(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		switch {
		case aerr == nil && berr == nil:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}
