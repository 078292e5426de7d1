package value

import (
	"fmt"
	"strconv"
)

// ConstantType is the type tag for Constant values.
var ConstantType = NewType("constant")

// Constant is an integer magnitude paired with a Domain that governs its
// presentation and its comparability with other constants.
type Constant struct {
	pos      int
	domain   Domain
	magnitude int64
}

// NewConstant constructs a Constant in the given domain.
func NewConstant(magnitude int64, domain Domain) *Constant {
	return &Constant{domain: domain, magnitude: magnitude}
}

func (c *Constant) Type() Type     { return ConstantType }
func (c *Constant) Pos() int       { return c.pos }
func (c *Constant) SetPos(pos int) { c.pos = pos }

// Magnitude returns the raw integer value.
func (c *Constant) Magnitude() int64 { return c.magnitude }

// Domain returns the constant's domain descriptor.
func (c *Constant) Domain() Domain { return c.domain }

func (c *Constant) Clone() Value {
	return &Constant{pos: c.pos, domain: c.domain, magnitude: c.magnitude}
}

func (c *Constant) Cmp(other Value) CmpResult {
	o, ok := other.(*Constant)
	if !ok {
		return Incomparable
	}
	if !c.domain.ComparableWith(o.domain) {
		return Incomparable
	}
	switch {
	case c.magnitude < o.magnitude:
		return Less
	case c.magnitude > o.magnitude:
		return Greater
	default:
		return Equal
	}
}

func (c *Constant) Show(b Brevity) string {
	if c.domain.Namer != nil {
		if name, ok := c.domain.Namer(c.magnitude); ok {
			if b == Brief {
				return name
			}
			return fmt.Sprintf("%s (%s)", name, c.rawForm())
		}
	}
	return c.rawForm()
}

func (c *Constant) rawForm() string {
	if c.domain.Name == "hex" {
		if c.magnitude < 0 {
			return fmt.Sprintf("-0x%x", -c.magnitude)
		}
		return fmt.Sprintf("0x%x", c.magnitude)
	}
	return strconv.FormatInt(c.magnitude, 10)
}
