// internal/testutil/fixtures.go
package testutil

// Fixture data for tests (primitive values only, no domain dependencies).

// FixtureIPs are valid dotted-decimal IPv4 addresses.
var FixtureIPs = []string{
	"192.168.1.1",
	"10.0.0.1",
	"172.16.0.1",
	"8.8.8.8",
}

// FixtureInvalidIPs are strings that must not parse as IPv4.
var FixtureInvalidIPs = []string{
	"",
	"10.0.0",
	"10.0.0.256",
	"2001:db8::1",
	"example.com",
}

// FixtureBanners are realistic first lines of common services.
var FixtureBanners = map[string]string{
	"ssh":  "SSH-2.0-OpenSSH_9.6p1 Ubuntu-3ubuntu13",
	"ftp":  "220 (vsFTPd 3.0.5)",
	"smtp": "220 mail.example.com ESMTP Postfix",
	"pop3": "+OK Dovecot ready.",
}
