// Package probe implements the TCP banner prober.
package probe

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/platform/errors"
	"bannerscan/internal/platform/logx"

	"golang.org/x/net/proxy"
)

const (
	DefaultConnectTimeout = 3 * time.Second
	DefaultReadTimeout    = 3 * time.Second
	DefaultMaxLines       = 10
	DefaultMaxBytes       = 64 * 1024
)

// DefaultProbeLines are sent after connecting: an HTTP request line for web
// servers, then a bare HELP for line-oriented services (FTP, SMTP, POP3).
var DefaultProbeLines = [][]byte{
	[]byte("HEAD / HTTP/1.0\r\n\r\n"),
	[]byte("HELP\r\n"),
}

// Options configures a BannerProbe.
type Options struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// ProbeLines are written in order before reading. Empty means send nothing.
	ProbeLines [][]byte

	// MaxLines bounds the number of banner lines collected.
	MaxLines int

	// MaxBytes bounds the bytes read per target, so a chatty service cannot
	// grow one banner without limit.
	MaxBytes int

	// ProxyURL routes connections through a SOCKS5 proxy ("socks5://host:1080").
	ProxyURL string
}

func (o *Options) normalize() {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	if o.MaxLines <= 0 {
		o.MaxLines = DefaultMaxLines
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
}

// BannerProbe connects to a target, sends probe lines and collects the banner.
// It is safe for concurrent use.
type BannerProbe struct {
	opts   Options
	dialer proxy.ContextDialer
	logger logx.Logger
}

// NewBannerProbe builds a probe. It fails only on an unusable proxy URL.
func NewBannerProbe(opts Options, logger logx.Logger) (*BannerProbe, error) {
	opts.normalize()
	if logger == nil {
		logger = logx.NewNop()
	}

	dialer, err := newDialer(opts)
	if err != nil {
		return nil, err
	}

	return &BannerProbe{
		opts:   opts,
		dialer: dialer,
		logger: logger.With("component", "banner-probe"),
	}, nil
}

// Options returns the normalized options.
func (p *BannerProbe) Options() Options {
	return p.opts
}

// Probe runs connect, write and read against target. It never returns a Go
// error: failures become Unreachable or Timeout outcomes. The socket is always
// closed before returning, and early if ctx is canceled.
func (p *BannerProbe) Probe(ctx context.Context, target domain.Target) domain.Outcome {
	addr := target.HostPort()

	dialCtx, cancel := context.WithTimeout(ctx, p.opts.ConnectTimeout)
	conn, err := p.dialer.DialContext(dialCtx, "tcp", addr)
	cancel()
	if err != nil {
		p.logger.Debug("connect failed", "target", addr, "error", err.Error())
		return domain.Unreachable(errors.Classify(err))
	}
	defer conn.Close()

	// Unblocks a pending read when the scan is torn down.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	deadline := time.Now().Add(p.opts.ReadTimeout)
	_ = conn.SetDeadline(deadline)

	p.writeProbes(addr, conn)

	return p.readBanner(ctx, addr, conn)
}

// writeProbes sends every probe line. A failed write stops further writes but
// the read phase still runs: many services answer before reading input.
func (p *BannerProbe) writeProbes(addr string, w io.Writer) {
	for i, line := range p.opts.ProbeLines {
		if len(line) == 0 {
			continue
		}
		if _, err := w.Write(line); err != nil {
			p.logger.Debug("probe write failed", "target", addr, "probe", i, "error", err.Error())
			return
		}
	}
}

// readBanner collects up to MaxLines lines before EOF or the read deadline.
func (p *BannerProbe) readBanner(ctx context.Context, addr string, r io.Reader) domain.Outcome {
	br := bufio.NewReader(io.LimitReader(r, int64(p.opts.MaxBytes)))

	var (
		banner strings.Builder
		lines  int
	)

	for lines < p.opts.MaxLines {
		chunk, err := br.ReadString('\n')
		if chunk != "" {
			banner.WriteString(strings.TrimRight(chunk, "\r\n"))
			banner.WriteByte('\n')
			lines++
		}
		if err == nil {
			continue
		}

		text := banner.String()
		switch {
		case errors.IsEOF(err):
			return domain.Banner(text)
		case errors.IsTimeout(err):
			p.logger.Debug("read timed out", "target", addr, "lines", lines)
			return domain.Timeout(text)
		case ctx.Err() != nil:
			return domain.Timeout(text)
		case text != "":
			// Dropped after speaking (typically a reset); what was said is the banner.
			p.logger.Debug("connection dropped after banner", "target", addr, "error", err.Error())
			return domain.Banner(text)
		default:
			return domain.Unreachable(errors.Classify(err))
		}
	}

	return domain.Banner(banner.String())
}
