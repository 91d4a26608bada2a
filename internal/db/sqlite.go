// Package db opens the sqlite database backing the research cache.
package db

import (
	"bookforge/internal/errors"
	"bookforge/internal/random"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed init.sql
var initialiseSchemaScript string

// Database holds two connection pools, one for read/write operations and one
// for read-only operations. Splitting the pools is a best practice mentioned
// in https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995.
type Database struct {
	ReadWrite *sqlx.DB
	ReadOnly  *sqlx.DB
}

// NewDatabase connects to the SQLite database at url and initializes the
// schema. Pass ":memory:" for an in-memory database.
func NewDatabase(url string) (*Database, error) {
	// For in-memory databases, we need shared cache mode so that both pools
	// access the same data. For parallel tests, each call gets a different
	// database name to avoid sharing data.
	// See https://www.sqlite.org/inmemorydb.html.
	isInMemory := strings.Contains(url, ":memory:")
	inMemoryConfig := ""
	if isInMemory {
		var dbNameLength uint = 20
		randomID, err := random.Letters(dbNameLength)
		if err != nil {
			return nil, errors.Wrap(err, "generate random ID")
		}
		url = randomID
		inMemoryConfig = "mode=memory&cache=shared"
	}
	commonConfig := "_journal_mode=wal&_busy_timeout=5000&_synchronous=normal&_foreign_keys=on"

	// The options prefixed with underscore '_' are SQLite pragmas documented
	// at https://www.sqlite.org/pragma.html. The options without leading
	// underscore are URI parameters documented at https://www.sqlite.org/uri.html.
	readConfig := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_query_only=true&%s&%s", url, commonConfig, inMemoryConfig)
	readWriteConfig := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate&%s&%s", url, commonConfig, inMemoryConfig)

	readWriteDB, err := sqlx.Open("sqlite3", readWriteConfig)
	if err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}
	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(time.Hour)
	readWriteDB.SetConnMaxIdleTime(time.Hour)

	if _, err = readWriteDB.Exec(initialiseSchemaScript); err != nil {
		return nil, errors.Wrap(err, "initialize schema")
	}

	readDB, err := sqlx.Open("sqlite3", readConfig)
	if err != nil {
		return nil, errors.Wrap(err, "open read database")
	}
	maxReadConns := 10
	readDB.SetMaxOpenConns(maxReadConns)
	readDB.SetMaxIdleConns(maxReadConns)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	return &Database{
		ReadWrite: readWriteDB,
		ReadOnly:  readDB,
	}, nil
}

// Close closes both pools.
func (d *Database) Close() error {
	return errors.Join(d.ReadWrite.Close(), d.ReadOnly.Close())
}
