package database

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"modelscan/internal/config"
)

// NewCatalogFromURI opens the catalog database identified by uri.
// postgres:// and postgresql:// URIs and key=value DSNs select
// PostgreSQL; anything else is treated as a SQLite database path.
func NewCatalogFromURI(uri string, cfg config.DatabaseConfig, log *slog.Logger) (*GormCatalog, error) {
	return NewGormCatalog(dialectorFor(uri), cfg, WithGormLogger(log))
}

// dialectorFor picks the GORM driver for a connection URI.
func dialectorFor(uri string) gorm.Dialector {
	if strings.HasPrefix(uri, "postgres://") ||
		strings.HasPrefix(uri, "postgresql://") ||
		strings.Contains(uri, "host=") {
		return postgres.Open(uri)
	}
	return sqlite.Open(uri)
}

// URIWithPassword returns uri with its password replaced, keeping any
// user name already present. Only URL-form URIs can carry an injected
// password.
func URIWithPassword(uri, password string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parsing database URI: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("cannot set a password on %q: not a URL-form URI", uri)
	}

	user := ""
	if u.User != nil {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, password)
	return u.String(), nil
}
