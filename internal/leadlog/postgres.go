package leadlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickhaul/quote-backend/internal/quote"
)

// execer is the slice of pgxpool.Pool the sink needs; pgxmock satisfies
// it in tests.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createLeadLogsTable = `
CREATE TABLE IF NOT EXISTS lead_logs (
	id BIGSERIAL PRIMARY KEY,
	logged_at TIMESTAMPTZ NOT NULL,
	log_type TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	company TEXT,
	stops TEXT NOT NULL,
	packages TEXT NOT NULL,
	vehicle_type TEXT,
	pickup_date TEXT,
	pickup_time TEXT,
	urgency TEXT,
	inside_delivery TEXT NOT NULL,
	hazardous TEXT NOT NULL,
	bio_hazardous TEXT NOT NULL,
	extra_laborer TEXT NOT NULL,
	total_miles NUMERIC,
	quote NUMERIC NOT NULL
)`

const insertLeadLog = `
INSERT INTO lead_logs (
	logged_at, log_type, name, email, phone, company,
	stops, packages, vehicle_type, pickup_date, pickup_time, urgency,
	inside_delivery, hazardous, bio_hazardous, extra_laborer,
	total_miles, quote
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

// PostgresSink appends lead records to the lead_logs table. The schema
// is created lazily on first append. Rows are insert-only; no update or
// delete path exists.
type PostgresSink struct {
	db execer

	mu      sync.Mutex
	created bool
}

// NewPostgresSink creates a sink backed by pgxpool.
func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	if pool == nil {
		panic("leadlog: pgx pool required")
	}
	return &PostgresSink{db: pool}
}

// Append inserts one record, creating the table first if this is the
// sink's first write.
func (s *PostgresSink) Append(ctx context.Context, rec quote.LeadRecord) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	var miles any
	if rec.TotalMiles != "" {
		miles = rec.TotalMiles
	}

	if _, err := s.db.Exec(ctx, insertLeadLog,
		rec.Timestamp.UTC(),
		rec.LogType,
		rec.Name,
		rec.Email,
		rec.Phone,
		rec.Company,
		rec.Stops,
		rec.Packages,
		rec.VehicleType,
		rec.PickupDate,
		rec.PickupTime,
		rec.Urgency,
		rec.InsideDelivery,
		rec.Hazardous,
		rec.BioHazardous,
		rec.ExtraLaborer,
		miles,
		rec.Quote,
	); err != nil {
		return fmt.Errorf("leadlog: insert failed: %w", err)
	}
	return nil
}

func (s *PostgresSink) ensureTable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.created {
		return nil
	}
	if _, err := s.db.Exec(ctx, createLeadLogsTable); err != nil {
		return fmt.Errorf("leadlog: create table: %w", err)
	}
	s.created = true
	return nil
}
