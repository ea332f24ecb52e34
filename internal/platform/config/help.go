// internal/platform/config/help.go
package config

import (
	"fmt"
	"os"
	"runtime"
)

const helpText = `
bannerscan - Concurrent TCP banner grabber

USAGE:
  bannerscan <start> [end] [options]
  bannerscan --cidr <prefix> [options]

IMPORTANT:
  Use double dash (--) for long flag names: --ports, --concurrency, --cidr
  Use single dash (-) for short flags: -p, -w, -c

  ❌ WRONG:  bannerscan -ports 22,80 10.0.0.1
  ✓  RIGHT:  bannerscan --ports 22,80 10.0.0.1
  ✓  RIGHT:  bannerscan -p 22,80 10.0.0.1

RANGE OPTIONS:
  -s, --start string       First IPv4 address (or first positional argument)
  -e, --end string         Last IPv4 address, inclusive (default: start)
  -c, --cidr string        IPv4 prefix instead of start/end (e.g., 10.0.0.0/24)
  -p, --ports string       Ports and ranges (default: "21,22,23,25,80,443,3306,5432")

SCAN OPTIONS:
  -w, --concurrency int        Concurrent probes (default: 50)
  -T, --timeout int            Global timeout in seconds, 0=no timeout (default: 0)
  --max-targets int            Refuse ranges above this many targets, 0=no limit (default: 1048576)
  --connect-timeout duration   TCP connect timeout (default: 3s)
  --read-timeout duration      Time allowed to read the banner (default: 3s)
  --task-deadline duration     Per-target wait before a result is dropped (default: 7s)
  -l, --max-lines int          Maximum banner lines kept per target (default: 10)
  --probe string               Bytes sent after connecting, Go escapes allowed
                               Repeatable. Default: "HEAD / HTTP/1.0\r\n\r\n", "HELP\r\n"
  --no-probes                  Send nothing, only read what the service says first

NETWORK OPTIONS:
  --proxy string           SOCKS5 proxy URL (e.g., socks5://127.0.0.1:9050)
  -r, --rate int           Connection attempts per second, 0=unlimited (default: 0)
  --spread                 Interleave hosts instead of probing one host's ports together

OUTPUT OPTIONS:
  -o, --out string         Directory for JSON/YAML reports (default: "bannerscan_out")
  -f, --format strings     Report formats: table, json, yaml (default: table)
  -a, --show-all           Include unreachable targets in the table
  --stream                 Append each result to an NDJSON file while scanning
  --ui string              Progress display: compact, raw, quiet (default: compact)
  -q, --quiet              No progress display

LOGGING:
  --log-level string       debug, info, warn, error (default: info)
  --verbose                Same as --log-level debug

INFO:
  --config string          YAML configuration file
  -v, --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  Scan a /24 on the default ports:
    bannerscan --cidr 192.168.1.0/24

  Explicit range and ports:
    bannerscan 192.168.1.1 192.168.1.254 -p 21,22,25,80-90

  Read-only banners (SSH, SMTP, FTP) with a tight budget:
    bannerscan 10.0.0.1 10.0.0.50 -p 21,22,25 --no-probes --read-timeout 1500ms

  Paced scan through a SOCKS proxy with JSON and YAML reports:
    bannerscan --cidr 10.0.0.0/28 -r 20 --proxy socks5://127.0.0.1:9050 -f table,json,yaml

ENVIRONMENT VARIABLES:
  Most flags can be set via environment variables with BANNERSCAN_ prefix:

  BANNERSCAN_START / BANNERSCAN_END     Range bounds
  BANNERSCAN_CIDR=10.0.0.0/24           Range as prefix
  BANNERSCAN_PORTS=22,80                Port list
  BANNERSCAN_CONCURRENCY=100            Concurrent probes
  BANNERSCAN_TIMEOUT=60                 Global timeout in seconds
  BANNERSCAN_MAX_TARGETS=65536          Maximum addresses x ports per scan
  BANNERSCAN_CONNECT_TIMEOUT=1500       Milliseconds or Go duration (1.5s)
  BANNERSCAN_READ_TIMEOUT=3s            Milliseconds or Go duration
  BANNERSCAN_TASK_DEADLINE=7s           Milliseconds or Go duration
  BANNERSCAN_MAX_LINES=10               Banner line cap
  BANNERSCAN_PROBES='HELP\r\n|QUIT\r\n' Probes separated by |
  BANNERSCAN_PROXY_URL=socks5://...     Proxy URL
  BANNERSCAN_RATE=20                    Connections per second
  BANNERSCAN_OUTPUT_DIR=/path           Output directory
  BANNERSCAN_FORMAT=table,json          Report formats
  BANNERSCAN_LOG_LEVEL=debug            Log level
  BANNERSCAN_CONFIG=/path/scan.yaml     Configuration file

  Note: CLI flags override environment variables, which override the config file.

RESULTS:
  Banner       the service answered; text holds up to --max-lines lines
  Timeout      the read budget ran out; text holds what was read so far
  Unreachable  refused, filtered or dropped before any banner
  Dropped      no result within --task-deadline; counted but not listed

  The table hides unreachable targets unless --show-all is given.
  JSON/YAML reports always contain every collected result.
`

// PrintHelp prints the custom help message and exits.
func PrintHelp() {
	fmt.Fprint(os.Stdout, helpText)
	os.Exit(0)
}

// PrintVersion prints version information and exits.
func PrintVersion(version, commit, date string) {
	fmt.Printf("bannerscan %s\n", version)
	fmt.Printf("  Commit:  %s\n", commit)
	fmt.Printf("  Built:   %s\n", date)
	fmt.Printf("  Go:      %s\n", getGoVersion())
	os.Exit(0)
}

func getGoVersion() string {
	return runtime.Version()
}
