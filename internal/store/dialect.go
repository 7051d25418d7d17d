package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"cricketcli/internal/config"
)

// placeholderStyle selects how query parameters are written
type placeholderStyle int

const (
	placeholderQuestion placeholderStyle = iota
	placeholderDollar
)

// sqliteBusyTimeout is applied through the modernc _pragma DSN parameter
const sqliteBusyTimeout = "_pragma=busy_timeout(5000)"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dialect carries the per-driver differences the store cares about
type dialect struct {
	name  string
	style placeholderStyle
}

// rebind rewrites ? placeholders into the dialect's style
func (d dialect) rebind(query string) string {
	if d.style != placeholderDollar {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quoteIdent wraps a validated identifier in double quotes, which both drivers accept
func quoteIdent(ident string) string {
	return `"` + ident + `"`
}

func validateTableName(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q (must match %s)", name, identRe.String())
	}
	return nil
}

// connect opens and pings the database selected by cfg
func connect(ctx context.Context, cfg config.StoreConfig, databaseFile string) (*sql.DB, dialect, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite, "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = databaseFile
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + sqliteBusyTimeout
		} else {
			dsn += "?" + sqliteBusyTimeout
		}

		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, dialect{}, err
		}
		// One connection keeps DDL and reads on the same file handle.
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, dialect{}, err
		}
		return db, dialect{name: config.DriverSQLite, style: placeholderQuestion}, nil

	case config.DriverPostgres:
		pgCfg, err := pgx.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, dialect{}, fmt.Errorf("parse postgres dsn: %w", err)
		}
		db := stdlib.OpenDB(*pgCfg)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, dialect{}, err
		}
		return db, dialect{name: config.DriverPostgres, style: placeholderDollar}, nil

	default:
		return nil, dialect{}, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
