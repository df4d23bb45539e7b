// internal/config/model.go
//
// Typed configuration model for Linkpage.
//
// Context
// -------
// These structs define the shape of the tree that loader.go builds from
// `.env`, `conf/global.yaml`, and `LINKPAGE_`-prefixed environment overrides.
// Secret-bearing strings (sink URL, sink headers, CSRF key) may hold a
// `vault:<path>#<key>` reference; ResolveSecrets swaps those for plain values
// before the server starts.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • Durations are written as Go duration strings (“30s”, “15m”).
//   • `Paths` is filled at runtime; YAML must not try to set it.

package config

import "time"

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr     string        `koanf:"listen_addr"     validate:"required,hostname_port"`
	ForceHTTPS     bool          `koanf:"force_https"`
	TrustProxy     bool          `koanf:"trust_proxy"` // honour X-Forwarded-For / X-Real-IP
	ReadTimeout    time.Duration `koanf:"read_timeout"    validate:"gte=0"`
	WriteTimeout   time.Duration `koanf:"write_timeout"   validate:"gte=0"`
	IdleTimeout    time.Duration `koanf:"idle_timeout"    validate:"gte=0"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

// Log selects the file directory and minimum level.
type Log struct {
	Dir   string `koanf:"dir"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Link is one entry in the profile link list.
type Link struct {
	Label string `koanf:"label" validate:"required"`
	URL   string `koanf:"url"   validate:"required,url"`
	Icon  string `koanf:"icon"`
}

// Profile is the content of the link-in-bio card.
type Profile struct {
	Name        string `koanf:"name"        validate:"required"`
	Title       string `koanf:"title"`
	Location    string `koanf:"location"`
	Flag        string `koanf:"flag"`
	Avatar      string `koanf:"avatar"`
	Email       string `koanf:"email"       validate:"omitempty,email"`
	Description string `koanf:"description"`
	Links       []Link `koanf:"links"       validate:"dive"`
}

// Sink points at the notification webhook.  An empty URL leaves the contact
// form up but every delivery fails.
type Sink struct {
	URL     string            `koanf:"url"     validate:"omitempty,url|startswith=vault:"`
	Timeout time.Duration     `koanf:"timeout" validate:"gte=0"`
	Headers map[string]string `koanf:"headers"`
}

// RateLimit caps contact submissions per client IP.
type RateLimit struct {
	RPS   float64 `koanf:"rps"   validate:"gte=0"`
	Burst int     `koanf:"burst" validate:"gte=0"`
}

// Security groups CSRF and abuse controls.
type Security struct {
	CSRFKey   string    `koanf:"csrf_key"`
	RateLimit RateLimit `koanf:"rate_limit"`
}

// Session tunes the in-memory visitor store.
type Session struct {
	IdleTTL    time.Duration `koanf:"idle_ttl"    validate:"gte=0"`
	MaxEntries int           `koanf:"max_entries" validate:"gte=0"`
}

// Analytics enables a third-party analytics script tag.
type Analytics struct {
	Domain string `koanf:"domain"`
	Script string `koanf:"script" validate:"omitempty,url"`
}

// GeoIP points at an optional MaxMind City database.
type GeoIP struct {
	DB string `koanf:"db"`
}

// Theme selects the page theme.  Dir, when set, overrides the embedded
// templates with files on disk.
type Theme struct {
	Name string `koanf:"name"`
	Dir  string `koanf:"dir"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // LINKPAGE_ROOT or discovered parent
}

// Config is the aggregate returned by Load().
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Log       Log       `koanf:"log"`
	Profile   Profile   `koanf:"profile"`
	Sink      Sink      `koanf:"sink"`
	Security  Security  `koanf:"security"`
	Session   Session   `koanf:"session"`
	Analytics Analytics `koanf:"analytics"`
	GeoIP     GeoIP     `koanf:"geoip"`
	Theme     Theme     `koanf:"theme"`
	Paths     Paths     `koanf:"-"`
}

// applyDefaults fills zero values the YAML left out.
func (c *Config) applyDefaults() {
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Profile.Description == "" {
		c.Profile.Description = "Check out my social links"
	}
	if c.Security.RateLimit.RPS == 0 {
		c.Security.RateLimit.RPS = 0.2 // one submission every five seconds
	}
	if c.Security.RateLimit.Burst == 0 {
		c.Security.RateLimit.Burst = 3
	}
	if c.Theme.Name == "" {
		c.Theme.Name = "default"
	}
}
