// Package sqlite persists normalized track points as an ordered columnar
// dataset. SQLite is the on-disk collaborator: the contract this package
// keeps is column names, types, nullability, and the row order the assembler
// produced.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
)

// Open opens (creating if needed) the dataset at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	return db, nil
}

// Store writes and reads the track_points table. It implements
// pipeline.BatchLoader.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS track_points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			unique_id TEXT NOT NULL,
			basin TEXT NOT NULL,
			cyclone_number TEXT NOT NULL,
			name TEXT NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			day INTEGER NOT NULL,
			hour INTEGER NOT NULL,
			minute INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			record_id TEXT NOT NULL,
			status TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			max_wind INTEGER,
			min_pressure INTEGER,
			radii_34_ne INTEGER, radii_34_se INTEGER, radii_34_sw INTEGER, radii_34_nw INTEGER,
			radii_50_ne INTEGER, radii_50_se INTEGER, radii_50_sw INTEGER, radii_50_nw INTEGER,
			radii_64_ne INTEGER, radii_64_se INTEGER, radii_64_sw INTEGER, radii_64_nw INTEGER,
			max_wind_radius INTEGER,
			ingested_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_track_points_unique_id ON track_points(unique_id);
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// LoadBatch appends a batch of track points in one transaction, preserving
// the order the assembler produced.
func (s *Store) LoadBatch(ctx context.Context, points []domain.TrackPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO track_points (
			unique_id, basin, cyclone_number, name,
			year, month, day, hour, minute,
			timestamp, record_id, status, latitude, longitude,
			max_wind, min_pressure,
			radii_34_ne, radii_34_se, radii_34_sw, radii_34_nw,
			radii_50_ne, radii_50_se, radii_50_sw, radii_50_nw,
			radii_64_ne, radii_64_se, radii_64_sw, radii_64_nw,
			max_wind_radius, ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tp := range points {
		_, err := stmt.ExecContext(ctx,
			tp.UniqueID, tp.Basin, tp.CycloneNumber, tp.Name,
			tp.Year, tp.Month, tp.Day, tp.Hour, tp.Minute,
			formatTime(tp.Timestamp), tp.RecordID, string(tp.Status), tp.Latitude, tp.Longitude,
			nullInt(tp.MaxWind), nullInt(tp.MinPressure),
			nullInt(tp.Radii34NE), nullInt(tp.Radii34SE), nullInt(tp.Radii34SW), nullInt(tp.Radii34NW),
			nullInt(tp.Radii50NE), nullInt(tp.Radii50SE), nullInt(tp.Radii50SW), nullInt(tp.Radii50NW),
			nullInt(tp.Radii64NE), nullInt(tp.Radii64SE), nullInt(tp.Radii64SW), nullInt(tp.Radii64NW),
			nullInt(tp.MaxWindRadius), formatTime(tp.IngestedAt),
		)
		if err != nil {
			return fmt.Errorf("insert track point %s @ %s: %w", tp.UniqueID, tp.Timestamp, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ReadAll returns every stored track point in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]domain.TrackPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT unique_id, basin, cyclone_number, name,
			year, month, day, hour, minute,
			timestamp, record_id, status, latitude, longitude,
			max_wind, min_pressure,
			radii_34_ne, radii_34_se, radii_34_sw, radii_34_nw,
			radii_50_ne, radii_50_se, radii_50_sw, radii_50_nw,
			radii_64_ne, radii_64_se, radii_64_sw, radii_64_nw,
			max_wind_radius, ingested_at
		FROM track_points ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.TrackPoint
	for rows.Next() {
		var (
			tp                   domain.TrackPoint
			status               string
			timestamp, ingested  string
			maxWind, minPressure sql.NullInt64
			radii                [12]sql.NullInt64
			rmw                  sql.NullInt64
		)
		err := rows.Scan(
			&tp.UniqueID, &tp.Basin, &tp.CycloneNumber, &tp.Name,
			&tp.Year, &tp.Month, &tp.Day, &tp.Hour, &tp.Minute,
			&timestamp, &tp.RecordID, &status, &tp.Latitude, &tp.Longitude,
			&maxWind, &minPressure,
			&radii[0], &radii[1], &radii[2], &radii[3],
			&radii[4], &radii[5], &radii[6], &radii[7],
			&radii[8], &radii[9], &radii[10], &radii[11],
			&rmw, &ingested,
		)
		if err != nil {
			return nil, err
		}

		tp.Status = domain.Status(status)
		if tp.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, err
		}
		if tp.IngestedAt, err = parseTime(ingested); err != nil {
			return nil, err
		}
		tp.MaxWind = intPtr(maxWind)
		tp.MinPressure = intPtr(minPressure)
		tp.Radii34NE, tp.Radii34SE, tp.Radii34SW, tp.Radii34NW = intPtr(radii[0]), intPtr(radii[1]), intPtr(radii[2]), intPtr(radii[3])
		tp.Radii50NE, tp.Radii50SE, tp.Radii50SW, tp.Radii50NW = intPtr(radii[4]), intPtr(radii[5]), intPtr(radii[6]), intPtr(radii[7])
		tp.Radii64NE, tp.Radii64SE, tp.Radii64SW, tp.Radii64NW = intPtr(radii[8]), intPtr(radii[9]), intPtr(radii[10]), intPtr(radii[11])
		tp.MaxWindRadius = intPtr(rmw)

		points = append(points, tp)
	}
	return points, rows.Err()
}

// Count returns the number of stored track points.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM track_points`).Scan(&n)
	return n, err
}

// Timestamps are stored as RFC 3339 text in UTC so values survive a
// write-read cycle exactly.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
