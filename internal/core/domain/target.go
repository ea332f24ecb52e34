// internal/core/domain/target.go
package domain

import (
	"fmt"
	"iter"
	"net"
	"strconv"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// Target is one unit of work: a single (address, port) pair.
type Target struct {
	Address Address `json:"address" yaml:"address"`
	Port    int     `json:"port" yaml:"port"`
}

// NewTarget builds a target.
func NewTarget(addr Address, port int) Target {
	return Target{Address: addr, Port: port}
}

// Validate checks the port bounds.
func (t Target) Validate() error {
	return ValidatePort(t.Port)
}

// HostPort returns the "ip:port" form accepted by net.Dial.
func (t Target) HostPort() string {
	return net.JoinHostPort(t.Address.String(), strconv.Itoa(t.Port))
}

// String is an alias of HostPort.
func (t Target) String() string {
	return t.HostPort()
}

// ValidatePort checks that p is in 1..65535.
func ValidatePort(p int) error {
	if p < MinPort || p > MaxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, p)
	}
	return nil
}

// ValidatePorts checks that the set is non-empty and every entry is valid.
func ValidatePorts(ports []int) error {
	if len(ports) == 0 {
		return ErrEmptyPorts
	}
	for _, p := range ports {
		if err := ValidatePort(p); err != nil {
			return err
		}
	}
	return nil
}

// EnumerateTargets yields the cross product of addresses and ports,
// address-major and port-minor. Repeated ports are yielded once per
// occurrence.
func EnumerateTargets(addresses iter.Seq[Address], ports []int) iter.Seq[Target] {
	return func(yield func(Target) bool) {
		if len(ports) == 0 {
			return
		}
		for a := range addresses {
			for _, p := range ports {
				if !yield(Target{Address: a, Port: p}) {
					return
				}
			}
		}
	}
}

// TargetCount returns how many targets EnumerateTargets yields for r and ports.
func TargetCount(r AddressRange, ports []int) uint64 {
	return r.Len() * uint64(len(ports))
}

// CheckTargetLimit fails with ErrTooManyTargets when r and ports expand to
// more than limit targets. A limit <= 0 disables the check.
func CheckTargetLimit(r AddressRange, ports []int, limit int) error {
	if limit <= 0 {
		return nil
	}
	if n := TargetCount(r, ports); n > uint64(limit) {
		return fmt.Errorf("%w: %d targets exceed the limit of %d", ErrTooManyTargets, n, limit)
	}
	return nil
}

// CollectTargets validates the port set and materializes the targets of a
// range into a slice.
func CollectTargets(r AddressRange, ports []int) ([]Target, error) {
	if err := ValidatePorts(ports); err != nil {
		return nil, err
	}

	targets := make([]Target, 0, int(min(TargetCount(r, ports), 1<<20)))
	for t := range EnumerateTargets(r.All(), ports) {
		targets = append(targets, t)
	}
	return targets, nil
}
