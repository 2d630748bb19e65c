// Package wire defines the compact code widgets hand back to the application:
// two 8-bit indices packed into one integer as (outgoing << 8) | incoming.
//
// Menus put their own priority in the outgoing byte and the chosen item in the
// incoming byte. Pagers put the page being left in the outgoing byte and the
// page being shown in the incoming byte. None fills either byte when there is
// no item or page.
package wire

import "fmt"

// None marks "no item" or "no page" in either half of a code.
const None = 0xFF

// Code is a packed pair of indices.
type Code uint16

// Callback receives codes from menus and pagers.
type Callback func(Code)

// Encode packs two indices. Negative or oversized indices become None.
func Encode(outgoing, incoming int) Code {
	return Code(clamp(outgoing)<<8 | clamp(incoming))
}

// Outgoing returns the high byte.
func (c Code) Outgoing() int {
	return int(c>>8) & 0xFF
}

// Incoming returns the low byte.
func (c Code) Incoming() int {
	return int(c) & 0xFF
}

// Decode splits c into its halves.
func (c Code) Decode() (outgoing, incoming int) {
	return c.Outgoing(), c.Incoming()
}

func (c Code) String() string {
	return fmt.Sprintf("%s>%s", half(c.Outgoing()), half(c.Incoming()))
}

func half(v int) string {
	if v == None {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}

func clamp(v int) uint16 {
	if v < 0 || v >= None {
		return None
	}
	return uint16(v)
}
