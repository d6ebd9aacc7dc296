package shapes

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the fixed shape variants.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindRect
	KindEllipse
	KindStar
	KindLineCircles
	KindCube
	kindCount
)

var kindNames = [kindCount]string{
	"point",
	"line",
	"rectangle",
	"ellipse",
	"star",
	"line_circles",
	"cube",
}

var kindLabels = [kindCount]string{
	"Point",
	"Line",
	"Rectangle",
	"Ellipse",
	"Star",
	"Line with circles",
	"Cube frame",
}

// kindAliases maps alternative spellings, including the class names used by
// older saved files, to their kind.
var kindAliases = map[string]Kind{
	"pointshape":      KindPoint,
	"lineshape":       KindLine,
	"rect":            KindRect,
	"rectshape":       KindRect,
	"ellipseshape":    KindEllipse,
	"circle":          KindEllipse,
	"linewithcircles": KindLineCircles,
	"circles":         KindLineCircles,
	"cubeframe":       KindCube,
}

// ErrUnknownKind is matched by every UnknownKindError.
var ErrUnknownKind = errors.New("unknown shape kind")

// UnknownKindError reports a shape kind identifier that is not recognised.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown shape kind %q", e.Name)
}

func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }

// Kinds returns every shape kind in toolbar order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := KindPoint; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool { return k >= KindPoint && k < kindCount }

// String returns the identifier used in saved files and on the command line.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label returns a human readable name.
func (k Kind) Label() string {
	if !k.Valid() {
		return "Unknown"
	}
	return kindLabels[k]
}

// Instant reports whether shapes of this kind are committed on pointer-down
// without a drag phase.
func (k Kind) Instant() bool { return k == KindPoint }

// ParseKind resolves a kind identifier. Matching is case-insensitive and
// accepts the legacy class names.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == key {
			return Kind(i), nil
		}
	}
	if k, ok := kindAliases[strings.ReplaceAll(key, "_", "")]; ok {
		return k, nil
	}
	return 0, &UnknownKindError{Name: name}
}
