package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	JWTSecret   string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience" yaml:"jwt_audience"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// AuthTimeout bounds calls to the external identity and friend
	// collaborators. An expired call counts as a denial, never a hang.
	AuthTimeout time.Duration `mapstructure:"auth_timeout" yaml:"auth_timeout"`

	// EnforceFriendGate controls whether a failed friendship check blocks
	// the join or only emits a not-friend notification. Defaults to
	// warn-and-join.
	EnforceFriendGate bool `mapstructure:"enforce_friend_gate" yaml:"enforce_friend_gate"`

	// RejectSpoofedSender controls whether a data frame whose sender field
	// does not match the authenticated connection is dropped (true) or
	// logged and relayed anyway (false).
	RejectSpoofedSender bool `mapstructure:"reject_spoofed_sender" yaml:"reject_spoofed_sender"`

	// EventBuffer is the per-connection outbound event queue size.
	// Presence delivery is best-effort: a full queue drops the event.
	EventBuffer int `mapstructure:"event_buffer" yaml:"event_buffer"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:                ":8080",
		ReadHeaderTimeout:   5 * time.Second,
		ShutdownTimeout:     5 * time.Second,
		DatabasePath:        "peercall.db",
		LogLevel:            "info",
		AuthTimeout:         3 * time.Second,
		EnforceFriendGate:   false,
		RejectSpoofedSender: false,
		EventBuffer:         16,
	}
}
