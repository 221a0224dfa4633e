package model

import "time"

// QRMarketingScan records one visit through a marketing QR code.  The
// identifier names the printed source (banner, ticket, poster...).
//
// Fields:
//  ID         – primary key identifier.
//  Identifier – source identifier taken from the ?qr= parameter.
//  IPAddress  – client address of the scan.
//  City       – optional city, compared case-insensitively when filtering.
//  UserAgent  – raw User-Agent header.
//  ScannedAt  – UTC timestamp of the scan.
type QRMarketingScan struct {
	ID         uint64    // qr_marketing_scans.id
	Identifier string    // qr_marketing_scans.identifier
	IPAddress  string    // qr_marketing_scans.ip_address
	City       *string   // qr_marketing_scans.city (nullable)
	UserAgent  string    // qr_marketing_scans.user_agent
	ScannedAt  time.Time // qr_marketing_scans.scanned_at
}

// ScanCount is one row of the analytics widget data: the number of scans
// per identifier.
type ScanCount struct {
	Identifier string `json:"identifier"`
	Count      int64  `json:"count"`
}
