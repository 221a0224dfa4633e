package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// ScanFilter narrows the analytics aggregation.  Dates are inclusive and
// compared on the calendar date of scanned_at (UTC); zero values disable
// the bound.  City is matched case-insensitively.
type ScanFilter struct {
	StartDate time.Time
	EndDate   time.Time
	City      string
}

// QRScanRepo persists and aggregates marketing QR scans.
type QRScanRepo struct {
	db *sql.DB
}

// NewQRScanRepo constructs a QRScanRepo given a DB handle.
func NewQRScanRepo(db *sql.DB) *QRScanRepo { return &QRScanRepo{db: db} }

// Record inserts a scan.  A zero ScannedAt lets the database default apply.
func (r *QRScanRepo) Record(ctx context.Context, s model.QRMarketingScan) (uint64, error) {
	var city any
	if s.City != nil && strings.TrimSpace(*s.City) != "" {
		city = strings.TrimSpace(*s.City)
	}
	var (
		res sql.Result
		err error
	)
	if s.ScannedAt.IsZero() {
		res, err = r.db.ExecContext(ctx,
			`INSERT INTO qr_marketing_scans (identifier, ip_address, city, user_agent) VALUES (?, ?, ?, ?)`,
			s.Identifier, s.IPAddress, city, s.UserAgent)
	} else {
		res, err = r.db.ExecContext(ctx,
			`INSERT INTO qr_marketing_scans (identifier, ip_address, city, user_agent, scanned_at) VALUES (?, ?, ?, ?, ?)`,
			s.Identifier, s.IPAddress, city, s.UserAgent, s.ScannedAt.UTC())
	}
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CountByIdentifier returns the number of scans per identifier matching f,
// ordered by identifier.  It returns an empty slice, never nil.
func (r *QRScanRepo) CountByIdentifier(ctx context.Context, f ScanFilter) ([]model.ScanCount, error) {
	where := []string{}
	args := []any{}
	if !f.StartDate.IsZero() {
		where = append(where, "DATE(scanned_at) >= ?")
		args = append(args, f.StartDate.Format("2006-01-02"))
	}
	if !f.EndDate.IsZero() {
		where = append(where, "DATE(scanned_at) <= ?")
		args = append(args, f.EndDate.Format("2006-01-02"))
	}
	if city := strings.TrimSpace(f.City); city != "" {
		where = append(where, "LOWER(city) = ?")
		args = append(args, strings.ToLower(city))
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT identifier, COUNT(*) FROM qr_marketing_scans WHERE `+cond+` GROUP BY identifier ORDER BY identifier`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ScanCount{}
	for rows.Next() {
		var sc model.ScanCount
		if err := rows.Scan(&sc.Identifier, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
