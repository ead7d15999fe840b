package configuration

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Libsql describes a catalog store connection. Url + AuthToken select a
// remote Turso/libsql database, File selects a local sqlite file.
type Libsql struct {
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
	File      string `json:"file"`
}

// LibsqlFromEnv reads the store connection from DATABASE_URL and
// DATABASE_AUTH_TOKEN. Both must be present.
func LibsqlFromEnv() (Libsql, error) {
	dburl := os.Getenv("DATABASE_URL")
	if dburl == "" {
		return Libsql{}, fmt.Errorf("DATABASE_URL is not set")
	}
	token := os.Getenv("DATABASE_AUTH_TOKEN")
	if token == "" {
		return Libsql{}, fmt.Errorf("DATABASE_AUTH_TOKEN is not set")
	}
	return Libsql{Url: dburl, AuthToken: token}, nil
}

// OpenDB opens the configured store and applies the given schema.
// schema may be empty to skip schema application.
func (config Libsql) OpenDB(schema string) (*sql.DB, error) {
	db, err := config.open()
	if err != nil {
		return nil, err
	}
	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

func (config Libsql) open() (*sql.DB, error) {
	if config.Url != "" {
		dsn := config.Url
		if config.AuthToken != "" {
			u, err := url.Parse(config.Url)
			if err != nil {
				return nil, err
			}
			q := u.Query()
			q.Set("authToken", config.AuthToken)
			u.RawQuery = q.Encode()
			dsn = u.String()
		}
		return sql.Open("libsql", dsn)
	}

	if config.File == "" {
		return nil, fmt.Errorf("neither a url nor a file was specified")
	}

	_, statErr := os.Stat(config.File)
	if os.IsNotExist(statErr) {
		f, err := os.Create(config.File)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// sqlite handles a single writer at a time, see
	// https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	return db, nil
}
