package config

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// driverName maps DB_DRIVER to the registered database/sql driver.
func driverName(d string) string {
	if d == "mysql" {
		return "mysql"
	}
	return "pgx"
}

// ConnectDB initializes the shared DB connection (idempotent).
func ConnectDB(env Env) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}

	db, err := sql.Open(driverName(env.DBDriver), env.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", env.DBDriver, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", env.DBDriver, err)
	}

	DB = db
	return DB, nil
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
