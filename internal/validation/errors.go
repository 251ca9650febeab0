package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
)

// Kind classifies a validation failure.
type Kind int

// Failure kinds. The zero value is not a failure.
const (
	KindNone Kind = iota
	KindInvalidFilename
	KindEmptyMap
	KindInconsistentLineLengths
	KindMissingBorderWall
	KindInvalidCharacter
	KindInvalidPlayerCount
	KindNoExit
	KindNoCollectable
	KindUnreachableExit
	KindUnreachableCollectable
)

var kindNames = map[Kind]string{
	KindNone:                    "NONE",
	KindInvalidFilename:         "INVALID_FILENAME",
	KindEmptyMap:                "EMPTY_MAP",
	KindInconsistentLineLengths: "INCONSISTENT_LINE_LENGTHS",
	KindMissingBorderWall:       "MISSING_BORDER_WALL",
	KindInvalidCharacter:        "INVALID_CHARACTER",
	KindInvalidPlayerCount:      "INVALID_PLAYER_COUNT",
	KindNoExit:                  "NO_EXIT",
	KindNoCollectable:           "NO_COLLECTABLE",
	KindUnreachableExit:         "UNREACHABLE_EXIT",
	KindUnreachableCollectable:  "UNREACHABLE_COLLECTABLE",
}

// String returns the upper snake case name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
//
// Postcondition: Returns (kind, true) for a known name, or (KindNone, false).
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == strings.ToUpper(name) {
			return k, true
		}
	}
	return KindNone, false
}

// IsShape reports whether k is one of the malformed-shape kinds.
func (k Kind) IsShape() bool {
	switch k {
	case KindEmptyMap, KindInconsistentLineLengths, KindMissingBorderWall:
		return true
	}
	return false
}

// Error is a single validation failure.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Pos is the offending tile when HasPos is true.
	Pos    tilemap.Coordinate
	HasPos bool
	// Detail adds context to the fixed message, such as a count or file name.
	Detail string
	// Unreached lists tiles that could not be reached, for the unreachable kinds.
	Unreached []tilemap.Coordinate
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(e.Kind.String()))
	if e.HasPos {
		fmt.Fprintf(&b, " at row %d, col %d", e.Pos.Row, e.Pos.Col)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is matches any *Error of the same kind, so the Err* sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Message returns the fixed diagnostic line for the failure.
func (e *Error) Message() string {
	return e.Kind.Message()
}

// Sentinels for errors.Is.
var (
	ErrInvalidFilename         = &Error{Kind: KindInvalidFilename}
	ErrEmptyMap                = &Error{Kind: KindEmptyMap}
	ErrInconsistentLineLengths = &Error{Kind: KindInconsistentLineLengths}
	ErrMissingBorderWall       = &Error{Kind: KindMissingBorderWall}
	ErrInvalidCharacter        = &Error{Kind: KindInvalidCharacter}
	ErrInvalidPlayerCount      = &Error{Kind: KindInvalidPlayerCount}
	ErrNoExit                  = &Error{Kind: KindNoExit}
	ErrNoCollectable           = &Error{Kind: KindNoCollectable}
	ErrUnreachableExit         = &Error{Kind: KindUnreachableExit}
	ErrUnreachableCollectable  = &Error{Kind: KindUnreachableCollectable}
)

// KindOf extracts the failure kind from err.
//
// Postcondition: Returns KindNone if err is nil or not a validation error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

// CheckFilename rejects names that do not end in ext.
func CheckFilename(name, ext string) error {
	if !tilemap.HasExtension(name, ext) {
		return &Error{Kind: KindInvalidFilename, Detail: fmt.Sprintf("%q does not end in %s", name, ext)}
	}
	return nil
}
