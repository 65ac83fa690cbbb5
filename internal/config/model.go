// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs give shape to the tree that loader.go assembles from three
// overlay layers:
//
//   • optional `conf/.env`                     – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `PARTIDO_`-prefixed environment overrides – highest precedence.
//
// The database password may be a literal or a `vault:<path>#<key>` URI; the
// vault package resolves the latter at boot, so the rest of the app only ever
// sees a plain string.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`; Koanf ignores yaml tags by default.
//   • The Paths block is filled at runtime, never from files.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the DSN template and its secret.  DSN must contain exactly
// one %s verb where the password is injected, keeping the credential out of
// flat files and process listings.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required,contains=%s"`
	Password string `koanf:"password" validate:"required"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime.  Root is PARTIDO_ROOT or the discovered
// repository root, used to anchor log and asset paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Paths    Paths    `koanf:"-"`
}
