package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
)

// Open connects to MySQL and verifies the connection.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps scan dates consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// The analytics workload is small: a write per scan and a grouped read.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const qrScanSchema = `CREATE TABLE IF NOT EXISTS qr_marketing_scans (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	identifier VARCHAR(100) NOT NULL,
	ip_address VARCHAR(45) NOT NULL,
	city VARCHAR(100) NULL,
	user_agent VARCHAR(512) NOT NULL DEFAULT '',
	scanned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_qr_scans_scanned_at (scanned_at),
	KEY idx_qr_scans_identifier (identifier)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the analytics tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, qrScanSchema); err != nil {
		return fmt.Errorf("create qr_marketing_scans: %w", err)
	}
	return nil
}
