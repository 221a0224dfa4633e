package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

func newMockRepo(t *testing.T) (*QRScanRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewQRScanRepo(db), mock
}

func TestQRScanRepo_CountByIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		filter ScanFilter
		where  string
		args   []driver.Value
	}{
		{
			name:  "no filter",
			where: "WHERE 1=1 GROUP BY",
		},
		{
			name: "date range and city",
			filter: ScanFilter{
				StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
				City:      " Kochi ",
			},
			where: "WHERE DATE(scanned_at) >= ? AND DATE(scanned_at) <= ? AND LOWER(city) = ? GROUP BY",
			args:  []driver.Value{"2025-03-01", "2025-03-31", "kochi"},
		},
		{
			name:   "end date only",
			filter: ScanFilter{EndDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
			where:  "WHERE DATE(scanned_at) <= ? GROUP BY",
			args:   []driver.Value{"2025-01-02"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			rows := sqlmock.NewRows([]string{"identifier", "count"}).
				AddRow("banner", 4).
				AddRow("ticket", 1)
			exp := mock.ExpectQuery(regexp.QuoteMeta(tc.where))
			if len(tc.args) > 0 {
				exp = exp.WithArgs(tc.args...)
			}
			exp.WillReturnRows(rows)

			got, err := repo.CountByIdentifier(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.Equal(t, []model.ScanCount{{Identifier: "banner", Count: 4}, {Identifier: "ticket", Count: 1}}, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQRScanRepo_CountByIdentifierEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT identifier").WillReturnRows(sqlmock.NewRows([]string{"identifier", "count"}))
	got, err := repo.CountByIdentifier(context.Background(), ScanFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQRScanRepo_CountByIdentifierError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT identifier").WillReturnError(errors.New("gone away"))
	_, err := repo.CountByIdentifier(context.Background(), ScanFilter{})
	assert.Error(t, err)
}

func TestQRScanRepo_Record(t *testing.T) {
	repo, mock := newMockRepo(t)
	city := "Kochi"
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO qr_marketing_scans (identifier, ip_address, city, user_agent) VALUES")).
		WithArgs("poster", "10.0.0.7", "Kochi", "curl/8.0").
		WillReturnResult(sqlmock.NewResult(12, 1))

	id, err := repo.Record(context.Background(), model.QRMarketingScan{
		Identifier: "poster", IPAddress: "10.0.0.7", City: &city, UserAgent: "curl/8.0",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	at := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("user_agent, scanned_at) VALUES")).
		WithArgs("unknown", "10.0.0.8", nil, "", at).
		WillReturnResult(sqlmock.NewResult(13, 1))
	_, err = repo.Record(context.Background(), model.QRMarketingScan{
		Identifier: "unknown", IPAddress: "10.0.0.8", ScannedAt: at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
