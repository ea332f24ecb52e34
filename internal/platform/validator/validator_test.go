// internal/platform/validator/validator_test.go
package validator

import (
	"slices"
	"testing"
)

func TestIsIPv4(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"192.168.1.1", true},
		{"10.0.0.1", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"256.1.1.1", false},
		{"10.0.0", false},
		{"2001:db8::1", false},
		{"::ffff:10.0.0.1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsIPv4(tt.input); got != tt.valid {
				t.Errorf("IsIPv4(%q) = %v, expected %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestIsCIDR4(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"10.0.0.0/8", true},
		{"192.168.1.5/32", true},
		{"10.0.0.0/33", false},
		{"2001:db8::/32", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsCIDR4(tt.input); got != tt.valid {
				t.Errorf("IsCIDR4(%q) = %v, expected %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestIsPort(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"1", true},
		{"80", true},
		{" 443 ", true},
		{"65535", true},
		{"0", false},
		{"65536", false},
		{"-1", false},
		{"http", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsPort(tt.input); got != tt.valid {
				t.Errorf("IsPort(%q) = %v, expected %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestParsePorts(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		want    []int
		wantErr bool
	}{
		{"single", "22", []int{22}, false},
		{"list keeps order", "443,22,80", []int{443, 22, 80}, false},
		{"range", "8000-8003", []int{8000, 8001, 8002, 8003}, false},
		{"mixed with spaces", " 21-23 , 80 ", []int{21, 22, 23, 80}, false},
		{"duplicates kept", "80,80", []int{80, 80}, false},
		{"single-port range", "25-25", []int{25}, false},

		{"empty", "", nil, true},
		{"empty token", "22,,80", nil, true},
		{"out of range", "70000", nil, true},
		{"zero", "0", nil, true},
		{"reversed range", "90-80", nil, true},
		{"garbage", "ssh", nil, true},
		{"half range", "80-", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePorts(tt.list)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePorts(%q) expected error, got %v", tt.list, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePorts(%q) unexpected error: %v", tt.list, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParsePorts(%q) = %v, expected %v", tt.list, got, tt.want)
			}
		})
	}
}

func TestFormatPorts(t *testing.T) {
	if got := FormatPorts([]int{21, 22, 80}); got != "21,22,80" {
		t.Errorf("FormatPorts = %q", got)
	}
	if got := FormatPorts(nil); got != "" {
		t.Errorf("FormatPorts(nil) = %q", got)
	}
}

func TestNormalizeIP(t *testing.T) {
	if got := NormalizeIP(" 10.0.0.1 "); got != "10.0.0.1" {
		t.Errorf("NormalizeIP = %q", got)
	}
	if got := NormalizeIP("not-an-ip"); got != "not-an-ip" {
		t.Errorf("NormalizeIP passthrough = %q", got)
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty("   ") || IsEmpty("x") {
		t.Error("IsEmpty mismatch")
	}
}
