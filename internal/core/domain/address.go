// internal/core/domain/address.go
package domain

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Address is an IPv4 host address stored as a big-endian 32-bit integer.
type Address uint32

// ParseAddress parses dotted-decimal text ("10.0.0.1") into an Address.
// The text must contain exactly four dot-separated decimal integers in 0..255.
// Leading zeros are accepted and dropped on normalization.
func ParseAddress(text string) (Address, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
	}

	var a uint32
	for _, p := range parts {
		if p == "" || len(p) > 3 || !isDigits(p) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
		}
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
		}
		a = a<<8 | uint32(n)
	}

	return Address(a), nil
}

// MustParseAddress is like ParseAddress but panics on error. Intended for
// tests and static tables.
func MustParseAddress(text string) Address {
	a, err := ParseAddress(text)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromOctets builds an Address from its four octets.
func AddressFromOctets(o [4]byte) Address {
	return Address(uint32(o[0])<<24 | uint32(o[1])<<16 | uint32(o[2])<<8 | uint32(o[3]))
}

// Octets returns the four octets of the address, most significant first.
func (a Address) Octets() [4]byte {
	return [4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
}

// String returns the canonical dotted-decimal form.
func (a Address) String() string {
	o := a.Octets()
	b := make([]byte, 0, 15)
	for i, v := range o {
		if i > 0 {
			b = append(b, '.')
		}
		b = strconv.AppendUint(b, uint64(v), 10)
	}
	return string(b)
}

// Uint32 returns the numeric value of the address.
func (a Address) Uint32() uint32 {
	return uint32(a)
}

// MarshalText implements encoding.TextMarshaler so reports serialize addresses
// in dotted-decimal form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AddressRange is an inclusive range of addresses. A range with Start > End
// is empty.
type AddressRange struct {
	Start Address
	End   Address
}

// NewAddressRange builds a range from two addresses.
func NewAddressRange(start, end Address) AddressRange {
	return AddressRange{Start: start, End: end}
}

// ParseRange parses both ends of a range. Either end failing to parse is
// reported as ErrInvalidAddress.
func ParseRange(start, end string) (AddressRange, error) {
	s, err := ParseAddress(start)
	if err != nil {
		return AddressRange{}, fmt.Errorf("range start: %w", err)
	}
	e, err := ParseAddress(end)
	if err != nil {
		return AddressRange{}, fmt.Errorf("range end: %w", err)
	}
	return AddressRange{Start: s, End: e}, nil
}

// IsEmpty reports whether the range yields no addresses.
func (r AddressRange) IsEmpty() bool {
	return r.Start > r.End
}

// Len returns the number of addresses in the range. A full 0.0.0.0-255.255.255.255
// range has 1<<32 entries, hence uint64.
func (r AddressRange) Len() uint64 {
	if r.IsEmpty() {
		return 0
	}
	return uint64(r.End) - uint64(r.Start) + 1
}

// Contains reports whether a lies within the range.
func (r AddressRange) Contains(a Address) bool {
	return !r.IsEmpty() && a >= r.Start && a <= r.End
}

// All returns a lazy, restartable sequence of the addresses in ascending order.
func (r AddressRange) All() iter.Seq[Address] {
	return func(yield func(Address) bool) {
		if r.IsEmpty() {
			return
		}
		for a := r.Start; ; a++ {
			if !yield(a) {
				return
			}
			// End may be 255.255.255.255; stop before wrapping.
			if a == r.End {
				return
			}
		}
	}
}

// String renders the range as "start-end".
func (r AddressRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
