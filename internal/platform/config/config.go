// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"bannerscan/internal/core/domain"
	"bannerscan/internal/platform/logx"
	"bannerscan/internal/platform/validator"
)

// EnvPrefix es el prefijo de todas las variables de entorno.
const EnvPrefix = "BANNERSCAN_"

// DefaultMaxTargets limita el producto direcciones x puertos de un scan.
const DefaultMaxTargets = 1 << 20

// Formatos de salida soportados.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type Config struct {
	Core    CoreConfig    `yaml:"core" json:"core"`
	Probe   ProbeConfig   `yaml:"probe" json:"probe"`
	Network NetworkConfig `yaml:"network" json:"network"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Log     LogConfig     `yaml:"log" json:"log"`

	// CLI
	ConfigFile   string `yaml:"-" json:"-"`
	PrintVersion bool   `yaml:"-" json:"-"`
	PrintHelp    bool   `yaml:"-" json:"-"`

	// Derivado de Core.Ports por normalize
	PortList []int `yaml:"-" json:"port_list"`
}

type CoreConfig struct {
	Start       string `yaml:"start" json:"start"`
	End         string `yaml:"end" json:"end"`
	CIDR        string `yaml:"cidr" json:"cidr"`
	Ports       string `yaml:"ports" json:"ports"`
	Concurrency int    `yaml:"concurrency" json:"concurrency"`
	TimeoutS    int    `yaml:"timeout" json:"timeout"`         // segundos para todo el scan (0 = sin timeout)
	MaxTargets  int    `yaml:"max-targets" json:"max_targets"` // tope de direcciones x puertos (0 = sin tope)
}

type ProbeConfig struct {
	ConnectTimeout time.Duration `yaml:"connect-timeout" json:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read-timeout" json:"read_timeout"`
	TaskDeadline   time.Duration `yaml:"task-deadline" json:"task_deadline"`
	MaxLines       int           `yaml:"max-lines" json:"max_lines"`

	// Probes admite secuencias de escape de Go ("HELP\r\n").
	Probes   []string `yaml:"probes" json:"probes"`
	NoProbes bool     `yaml:"no-probes" json:"no_probes"`
}

type NetworkConfig struct {
	ProxyURL string `yaml:"proxy" json:"proxy"`
	Rate     int    `yaml:"rate" json:"rate"` // conexiones por segundo (0 = sin límite)
	Spread   bool   `yaml:"spread" json:"spread"`
}

type OutputConfig struct {
	Dir     string   `yaml:"dir" json:"dir"`
	Formats []string `yaml:"formats" json:"formats"`
	ShowAll bool     `yaml:"show-all" json:"show_all"`
	Stream  bool     `yaml:"stream" json:"stream"`
	UIMode  string   `yaml:"ui" json:"ui"`
	Quiet   bool     `yaml:"quiet" json:"quiet"`
}

type LogConfig struct {
	Level   string `yaml:"level" json:"level"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: CoreConfig{
			Ports:       "21,22,23,25,80,443,3306,5432",
			Concurrency: 50,
			TimeoutS:    0,
			MaxTargets:  DefaultMaxTargets,
		},
		Probe: ProbeConfig{
			ConnectTimeout: 3 * time.Second,
			ReadTimeout:    3 * time.Second,
			TaskDeadline:   7 * time.Second,
			MaxLines:       10,
			Probes:         []string{`HEAD / HTTP/1.0\r\n\r\n`, `HELP\r\n`},
		},
		Network: NetworkConfig{},
		Output: OutputConfig{
			Dir:     "bannerscan_out",
			Formats: []string{FormatTable},
			UIMode:  "compact",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load inicializa la configuración desde os.Args y resuelve --help y --version
// (ambos terminan el proceso).
func Load(version, commit, date string) (Config, error) {
	cfg, err := LoadArgs(pflag.CommandLine, os.Args[1:])
	if err != nil {
		return cfg, err
	}

	if cfg.PrintHelp {
		PrintHelp()
	}
	if cfg.PrintVersion {
		PrintVersion(version, commit, date)
	}

	return cfg, nil
}

// LoadArgs aplica, en orden de prioridad creciente: defaults, archivo YAML
// (--config o BANNERSCAN_CONFIG), variables de entorno y flags.
func LoadArgs(fs *pflag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()

	// Archivo de configuración
	path := findConfigPath(args)
	if path == "" {
		path = getenv(EnvPrefix+"CONFIG", "")
	}
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, err
		}
		cfg.ConfigFile = path
	}

	// Cargar desde ENV
	loadFromEnv(&cfg)

	// Parsear flags (overrides ENV)
	if err := loadFromFlags(fs, &cfg, args); err != nil {
		return cfg, err
	}

	// Normalizar
	if err := normalize(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// findConfigPath busca --config antes del parseo completo, ignorando el resto de flags.
func findConfigPath(args []string) string {
	pre := pflag.NewFlagSet("pre", pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.SetOutput(io.Discard)
	pre.Usage = func() {}

	path := pre.String("config", "", "")
	_ = pre.Parse(args)
	return *path
}

// loadFromFile carga un archivo YAML sobre la configuración actual.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	// Core
	if v := getenv(EnvPrefix+"START", ""); v != "" {
		cfg.Core.Start = v
	}
	if v := getenv(EnvPrefix+"END", ""); v != "" {
		cfg.Core.End = v
	}
	if v := getenv(EnvPrefix+"CIDR", ""); v != "" {
		cfg.Core.CIDR = v
	}
	if v := getenv(EnvPrefix+"PORTS", ""); v != "" {
		cfg.Core.Ports = v
	}
	if v := getenv(EnvPrefix+"CONCURRENCY", ""); v != "" {
		cfg.Core.Concurrency = parseInt(v, cfg.Core.Concurrency)
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		cfg.Core.TimeoutS = parseInt(v, cfg.Core.TimeoutS)
	}
	if v := getenv(EnvPrefix+"MAX_TARGETS", ""); v != "" {
		cfg.Core.MaxTargets = parseInt(v, cfg.Core.MaxTargets)
	}

	// Probe
	if v := getenv(EnvPrefix+"CONNECT_TIMEOUT", ""); v != "" {
		cfg.Probe.ConnectTimeout = parseDuration(v, cfg.Probe.ConnectTimeout)
	}
	if v := getenv(EnvPrefix+"READ_TIMEOUT", ""); v != "" {
		cfg.Probe.ReadTimeout = parseDuration(v, cfg.Probe.ReadTimeout)
	}
	if v := getenv(EnvPrefix+"TASK_DEADLINE", ""); v != "" {
		cfg.Probe.TaskDeadline = parseDuration(v, cfg.Probe.TaskDeadline)
	}
	if v := getenv(EnvPrefix+"MAX_LINES", ""); v != "" {
		cfg.Probe.MaxLines = parseInt(v, cfg.Probe.MaxLines)
	}
	// Formato: BANNERSCAN_PROBES='HEAD / HTTP/1.0\r\n\r\n|HELP\r\n'
	if v := getenv(EnvPrefix+"PROBES", ""); v != "" {
		cfg.Probe.Probes = strings.Split(v, "|")
	}
	if v := getenv(EnvPrefix+"NO_PROBES", ""); v != "" {
		cfg.Probe.NoProbes = parseBool(v)
	}

	// Network
	if v := getenv(EnvPrefix+"PROXY_URL", ""); v != "" {
		cfg.Network.ProxyURL = v
	}
	if v := getenv(EnvPrefix+"RATE", ""); v != "" {
		cfg.Network.Rate = parseInt(v, cfg.Network.Rate)
	}
	if v := getenv(EnvPrefix+"SPREAD", ""); v != "" {
		cfg.Network.Spread = parseBool(v)
	}

	// Output
	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvPrefix+"FORMAT", ""); v != "" {
		cfg.Output.Formats = strings.Split(v, ",")
	}
	if v := getenv(EnvPrefix+"SHOW_ALL", ""); v != "" {
		cfg.Output.ShowAll = parseBool(v)
	}
	if v := getenv(EnvPrefix+"STREAM", ""); v != "" {
		cfg.Output.Stream = parseBool(v)
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.Output.UIMode = v
	}

	// Log
	if v := getenv(logx.EnvLevel, ""); v != "" {
		cfg.Log.Level = v
	}
}

// loadFromFlags parsea flags de CLI. Los argumentos posicionales, si los hay,
// son la dirección inicial y la final: bannerscan 10.0.0.1 10.0.0.254
func loadFromFlags(fs *pflag.FlagSet, cfg *Config, args []string) error {
	// Core
	fs.StringVarP(&cfg.Core.Start, "start", "s", cfg.Core.Start, "First IPv4 address of the range")
	fs.StringVarP(&cfg.Core.End, "end", "e", cfg.Core.End, "Last IPv4 address of the range (default: start)")
	fs.StringVarP(&cfg.Core.CIDR, "cidr", "c", cfg.Core.CIDR, "IPv4 prefix to scan instead of start/end")
	fs.StringVarP(&cfg.Core.Ports, "ports", "p", cfg.Core.Ports, "Ports: list and ranges (21,22,80-90)")
	fs.IntVarP(&cfg.Core.Concurrency, "concurrency", "w", cfg.Core.Concurrency, "Number of concurrent probes")
	fs.IntVarP(&cfg.Core.TimeoutS, "timeout", "T", cfg.Core.TimeoutS, "Global timeout in seconds (0 = no timeout)")
	fs.IntVar(&cfg.Core.MaxTargets, "max-targets", cfg.Core.MaxTargets, "Refuse ranges expanding to more targets (0 = no limit)")

	// Probe
	fs.DurationVar(&cfg.Probe.ConnectTimeout, "connect-timeout", cfg.Probe.ConnectTimeout, "TCP connect timeout")
	fs.DurationVar(&cfg.Probe.ReadTimeout, "read-timeout", cfg.Probe.ReadTimeout, "Banner read timeout")
	fs.DurationVar(&cfg.Probe.TaskDeadline, "task-deadline", cfg.Probe.TaskDeadline, "Per-target deadline after which a result is dropped")
	fs.IntVarP(&cfg.Probe.MaxLines, "max-lines", "l", cfg.Probe.MaxLines, "Maximum banner lines per target")
	fs.StringArrayVar(&cfg.Probe.Probes, "probe", cfg.Probe.Probes, "Probe string sent after connecting (repeatable, Go escapes allowed)")
	fs.BoolVar(&cfg.Probe.NoProbes, "no-probes", cfg.Probe.NoProbes, "Send nothing, only read what the service says first")

	// Network
	fs.StringVar(&cfg.Network.ProxyURL, "proxy", cfg.Network.ProxyURL, "SOCKS5 proxy URL (socks5://host:port)")
	fs.IntVarP(&cfg.Network.Rate, "rate", "r", cfg.Network.Rate, "Maximum connection attempts per second (0 = unlimited)")
	fs.BoolVar(&cfg.Network.Spread, "spread", cfg.Network.Spread, "Interleave hosts so one host's ports are not probed all at once")

	// Output
	fs.StringVarP(&cfg.Output.Dir, "out", "o", cfg.Output.Dir, "Output directory for JSON/YAML reports")
	fs.StringSliceVarP(&cfg.Output.Formats, "format", "f", cfg.Output.Formats, "Report formats: table, json, yaml")
	fs.BoolVarP(&cfg.Output.ShowAll, "show-all", "a", cfg.Output.ShowAll, "Include unreachable targets in the table")
	fs.BoolVar(&cfg.Output.Stream, "stream", cfg.Output.Stream, "Write each result to an NDJSON file as it arrives")
	fs.StringVar(&cfg.Output.UIMode, "ui", cfg.Output.UIMode, "Progress display: compact, raw, quiet")
	fs.BoolVarP(&cfg.Output.Quiet, "quiet", "q", cfg.Output.Quiet, "No progress display (same as --ui quiet)")

	// Log
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Log.Verbose, "verbose", cfg.Log.Verbose, "Debug logging")

	// Info
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML configuration file")
	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Print version and exit")
	fs.BoolVarP(&cfg.PrintHelp, "help", "h", false, "Show help")

	fs.Usage = func() { fmt.Fprint(os.Stderr, helpText) }

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		cfg.Core.Start = rest[0]
	case 2:
		cfg.Core.Start, cfg.Core.End = rest[0], rest[1]
	default:
		return fmt.Errorf("%w: unexpected arguments %q", domain.ErrInvalidConfig, rest[2:])
	}

	return nil
}

func normalize(c *Config) error {
	c.Core.Start = strings.TrimSpace(c.Core.Start)
	c.Core.End = strings.TrimSpace(c.Core.End)
	c.Core.CIDR = strings.TrimSpace(c.Core.CIDR)
	if c.Core.End == "" {
		c.Core.End = c.Core.Start
	}
	if c.Core.MaxTargets < 0 {
		c.Core.MaxTargets = 0
	}
	if c.Core.TimeoutS < 0 {
		c.Core.TimeoutS = 0
	}
	if c.Network.Rate < 0 {
		c.Network.Rate = 0
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "bannerscan_out"
	}
	if c.Output.Quiet {
		c.Output.UIMode = "quiet"
	}
	if c.Log.Verbose {
		c.Log.Level = "debug"
	}

	formats := c.Output.Formats[:0:0]
	for _, f := range c.Output.Formats {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	c.Output.Formats = formats

	c.PortList = nil
	if !validator.IsEmpty(c.Core.Ports) {
		ports, err := validator.ParsePorts(c.Core.Ports)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidPort, err)
		}
		c.PortList = ports
	}

	return nil
}

// Validate comprueba que la configuración permite iniciar un scan.
func (c Config) Validate() error {
	r, err := c.Range()
	if err != nil {
		return err
	}
	if err := domain.ValidatePorts(c.PortList); err != nil {
		return err
	}
	if err := domain.CheckTargetLimit(r, c.PortList, c.Core.MaxTargets); err != nil {
		return err
	}
	if c.Core.Concurrency <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidConcurrency, c.Core.Concurrency)
	}
	if c.Probe.ConnectTimeout <= 0 || c.Probe.ReadTimeout <= 0 {
		return fmt.Errorf("%w: connect and read timeouts must be positive", domain.ErrInvalidConfig)
	}
	if c.Probe.TaskDeadline <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDeadline, c.Probe.TaskDeadline)
	}
	if c.Probe.MaxLines <= 0 {
		return fmt.Errorf("%w: max-lines must be positive", domain.ErrInvalidConfig)
	}
	if _, err := c.ProbeBytes(); err != nil {
		return err
	}
	for _, f := range c.Output.Formats {
		switch f {
		case FormatTable, FormatJSON, FormatYAML:
		default:
			return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidConfig, f)
		}
	}
	if c.Network.ProxyURL != "" {
		u, err := url.Parse(c.Network.ProxyURL)
		if err != nil || (u.Scheme != "socks5" && u.Scheme != "socks5h") || u.Host == "" {
			return fmt.Errorf("%w: proxy must be socks5://host:port", domain.ErrInvalidConfig)
		}
	}
	return nil
}

// Range construye el rango a escanear desde CIDR o start/end.
func (c Config) Range() (domain.AddressRange, error) {
	switch {
	case c.Core.CIDR != "" && c.Core.Start != "":
		return domain.AddressRange{}, fmt.Errorf("%w: use either --cidr or --start/--end", domain.ErrInvalidConfig)
	case c.Core.CIDR != "":
		return domain.RangeFromCIDR(c.Core.CIDR)
	case c.Core.Start == "":
		return domain.AddressRange{}, fmt.Errorf("%w: an address range is required (--start/--end or --cidr)", domain.ErrInvalidConfig)
	default:
		return domain.ParseRange(c.Core.Start, c.Core.End)
	}
}

// RangeLabel describe el rango para nombres de archivo y pantalla.
func (c Config) RangeLabel() string {
	if c.Core.CIDR != "" {
		return c.Core.CIDR
	}
	if c.Core.End == "" || c.Core.End == c.Core.Start {
		return c.Core.Start
	}
	return c.Core.Start + "-" + c.Core.End
}

// ProbeBytes decodifica las secuencias de escape de cada probe.
func (c Config) ProbeBytes() ([][]byte, error) {
	if c.Probe.NoProbes {
		return nil, nil
	}

	out := make([][]byte, 0, len(c.Probe.Probes))
	for _, p := range c.Probe.Probes {
		b, err := DecodeProbe(p)
		if err != nil {
			return nil, err
		}
		if len(b) > 0 {
			out = append(out, b)
		}
	}
	return out, nil
}

// DecodeProbe interpreta escapes de Go (\r, \n, \t, \x00, é) en s.
func DecodeProbe(s string) ([]byte, error) {
	if !strings.Contains(s, `\`) {
		return []byte(s), nil
	}
	unq, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid probe %q: %v", domain.ErrInvalidConfig, s, err)
	}
	return []byte(unq), nil
}

// Timeout devuelve el timeout global como time.Duration (0 = sin timeout).
func (c Config) Timeout() time.Duration {
	if c.Core.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Core.TimeoutS) * time.Second
}

// LogLevel devuelve el nivel de log efectivo.
func (c Config) LogLevel() logx.Level {
	return logx.ParseLevel(c.Log.Level)
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// parseDuration acepta "1500ms", "3s" o un entero en milisegundos.
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
