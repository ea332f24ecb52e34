// internal/platform/validator/validator.go
package validator

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// IP validators

// IsIPv4 reports whether ip is a dotted-decimal IPv4 address.
func IsIPv4(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	return parsed != nil && parsed.To4() != nil && !strings.Contains(ip, ":")
}

// IsCIDR4 reports whether s is an IPv4 prefix such as "10.0.0.0/24".
func IsCIDR4(s string) bool {
	p, err := netip.ParsePrefix(strings.TrimSpace(s))
	return err == nil && p.Addr().Is4()
}

// NormalizeIP returns the canonical textual form, or the trimmed input if it
// does not parse.
func NormalizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if parsed := net.ParseIP(ip); parsed != nil {
		return parsed.String()
	}
	return ip
}

// Port validators

// IsPort reports whether portStr is a decimal port in 1..65535.
func IsPort(portStr string) bool {
	port, err := strconv.Atoi(strings.TrimSpace(portStr))
	if err != nil {
		return false
	}
	return port >= 1 && port <= 65535
}

// ParsePorts parses a port specification.
// Supported forms:
//   - single: "22"
//   - single: "22,80,443"
//   - range:  "8000-8010"
//   - mixed:  "21-23,80,8080"
//
// Order is preserved and duplicates are kept: every occurrence is probed.
func ParsePorts(list string) ([]int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, fmt.Errorf("empty port list")
	}

	var ports []int
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("empty token in port list %q", list)
		}

		lo, hi, isRange := strings.Cut(tok, "-")
		if !isRange {
			if !IsPort(tok) {
				return nil, fmt.Errorf("invalid port %q: must be in 1..65535", tok)
			}
			p, _ := strconv.Atoi(tok)
			ports = append(ports, p)
			continue
		}

		if !IsPort(lo) || !IsPort(hi) {
			return nil, fmt.Errorf("invalid port range %q: bounds must be in 1..65535", tok)
		}
		start, _ := strconv.Atoi(strings.TrimSpace(lo))
		end, _ := strconv.Atoi(strings.TrimSpace(hi))
		if start > end {
			return nil, fmt.Errorf("invalid port range %q: start greater than end", tok)
		}
		for p := start; p <= end; p++ {
			ports = append(ports, p)
		}
	}

	return ports, nil
}

// FormatPorts renders ports as a comma-separated list.
func FormatPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// Utility validators

// IsEmpty reports whether s is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
