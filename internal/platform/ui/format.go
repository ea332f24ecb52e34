// internal/platform/ui/format.go
package ui

import (
	"fmt"
	"net/url"
	"time"
)

// FormatDuration formatea la duración de un objetivo o de un scan completo.
// Por debajo de un milisegundo muestra "<1ms"; desde una hora, "1h2m".
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0ms"
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// Throughput devuelve objetivos resueltos por segundo.
func Throughput(stats ScanStats) float64 {
	if stats.TotalDuration <= 0 {
		return 0
	}
	resolved := stats.Banners + stats.Timeouts + stats.Unreachable + stats.Dropped
	return float64(resolved) / stats.TotalDuration.Seconds()
}

// ProxyHost extrae host:port de una URL socks5; vacío significa conexión directa.
func ProxyHost(proxy string) string {
	if proxy == "" {
		return "direct"
	}
	u, err := url.Parse(proxy)
	if err != nil || u.Host == "" {
		return proxy
	}
	return u.Host
}

// rateLabel convierte el límite de conexiones por segundo a texto
func rateLabel(perSecond int) string {
	if perSecond <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d/s", perSecond)
}
