package kernel

import "fmt"

// Rights is the set of operations a Capability permits.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint numbers a kernel mailbox.
type Endpoint uint8

// Capability is an unforgeable reference to an endpoint. Tasks can only
// narrow one with Restrict, or hand it to another task inside a Message.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) valid() bool   { return c.rights != 0 }
func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict keeps only the rights present in both c and rights. Dropping every
// right yields the zero Capability.
func (c Capability) Restrict(rights Rights) Capability {
	if r := c.rights & rights; r != 0 {
		return Capability{ep: c.ep, rights: r}
	}
	return Capability{}
}

func (c Capability) String() string {
	if !c.valid() {
		return "cap(invalid)"
	}
	var r string
	if c.canSend() {
		r += "s"
	}
	if c.canRecv() {
		r += "r"
	}
	return fmt.Sprintf("cap(ep=%d %s)", c.ep, r)
}
