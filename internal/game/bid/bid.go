package bid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
)

const (
	MinLevel = 1
	MaxLevel = 7
)

// Special 特殊叫品
type Special int

const (
	NotSpecial Special = iota
	SpecialPass
	SpecialDouble
	SpecialRedouble
)

// Token returns the wire token of a special call.
func (s Special) Token() string {
	switch s {
	case NotSpecial:
		return ""
	case SpecialPass:
		return "PASS"
	case SpecialDouble:
		return "X"
	case SpecialRedouble:
		return "XX"
	}
	panic(fmt.Sprintf("bid: invalid special %d", int(s)))
}

// Bid is one call: either a special action or a (level, strain) pair.
// The zero value stands for "no call yet".
type Bid struct {
	level   int
	strain  Strain
	special Special
}

// Pass returns the PASS call.
func Pass() Bid { return Bid{special: SpecialPass} }

// Double returns the DOUBLE call.
func Double() Bid { return Bid{special: SpecialDouble} }

// Redouble returns the REDOUBLE call.
func Redouble() Bid { return Bid{special: SpecialRedouble} }

// New returns a plain bid such as 4♥.
func New(level int, strain Strain) (Bid, error) {
	if level < MinLevel || level > MaxLevel {
		return Bid{}, fmt.Errorf("%w: level %d out of range", apperrors.ErrParse, level)
	}
	if strain < Clubs || strain > NoTrump {
		return Bid{}, fmt.Errorf("%w: invalid strain %d", apperrors.ErrParse, int(strain))
	}
	return Bid{level: level, strain: strain}, nil
}

func (b Bid) Level() int { return b.level }
func (b Bid) Strain() Strain { return b.strain }
func (b Bid) Special() Special { return b.special }
func (b Bid) IsZero() bool { return b == Bid{} }
func (b Bid) IsSpecial() bool { return b.special != NotSpecial }
func (b Bid) IsPass() bool { return b.special == SpecialPass }
func (b Bid) IsDouble() bool { return b.special == SpecialDouble }
func (b Bid) IsRedouble() bool { return b.special == SpecialRedouble }
func (b Bid) IsPlain() bool { return b.special == NotSpecial && b.level > 0 }

// IsHigherThan reports whether plain bid b outranks plain bid other: a higher
// level, or the same level in a higher strain. Any plain bid outranks the zero
// Bid. Special calls never outrank anything.
func (b Bid) IsHigherThan(other Bid) bool {
	if !b.IsPlain() {
		return false
	}
	if other.IsZero() {
		return true
	}
	if !other.IsPlain() {
		return false
	}
	if b.level != other.level {
		return b.level > other.level
	}
	return b.strain > other.strain
}

// String returns the wire token (PASS, X, XX, 1NT).
func (b Bid) String() string {
	if b.IsSpecial() {
		return b.special.Token()
	}
	if b.IsZero() {
		return ""
	}
	return strconv.Itoa(b.level) + b.strain.Abbreviation()
}

// Parse reads a bid token. Input is case-insensitive.
func Parse(s string) (Bid, error) {
	token := strings.ToUpper(strings.TrimSpace(s))
	switch token {
	case "PASS":
		return Pass(), nil
	case "X":
		return Double(), nil
	case "XX":
		return Redouble(), nil
	}
	if len(token) < 2 || token[0] < '0' || token[0] > '9' {
		return Bid{}, fmt.Errorf("%w: bid %q", apperrors.ErrParse, s)
	}
	strain, err := ParseStrain(token[1:])
	if err != nil {
		return Bid{}, fmt.Errorf("%w: bid %q", apperrors.ErrParse, s)
	}
	return New(int(token[0]-'0'), strain)
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Bid {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// vocabulary 全部 38 个叫品，按显示顺序
var vocabulary = func() []Bid {
	out := []Bid{Pass()}
	for level := MinLevel; level <= MaxLevel; level++ {
		for _, s := range Strains {
			out = append(out, Bid{level: level, strain: s})
		}
	}
	return append(out, Double(), Redouble())
}()

// Vocabulary returns every call in display order: PASS, 1C..7NT, X, XX.
func Vocabulary() []Bid {
	return append([]Bid(nil), vocabulary...)
}
