// internal/core/domain/cidr.go
package domain

import (
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// RangeFromCIDR converts an IPv4 prefix ("192.168.1.0/24") into the inclusive
// range it covers. Host bits in the prefix are ignored.
func RangeFromCIDR(cidr string) (AddressRange, error) {
	p, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	if err != nil {
		return AddressRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, cidr, err)
	}
	if !p.Addr().Is4() {
		return AddressRange{}, fmt.Errorf("%w: %q is not IPv4", ErrInvalidAddress, cidr)
	}

	r := netipx.RangeOfPrefix(p.Masked())
	if !r.IsValid() {
		return AddressRange{}, fmt.Errorf("%w: %q", ErrInvalidRange, cidr)
	}

	return AddressRange{
		Start: AddressFromOctets(r.From().As4()),
		End:   AddressFromOctets(r.To().As4()),
	}, nil
}
