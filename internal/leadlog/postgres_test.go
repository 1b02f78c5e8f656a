package leadlog

import (
	"context"
	"errors"
	"strings"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// anyLeadArgs matches the 18 insert parameters without constraining
// their values; pgxmock requires the argument count to line up even
// when the test does not care about the values.
func anyLeadArgs() []any {
	args := make([]any, 18)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func newMockSink(t *testing.T) (*PostgresSink, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock setup: %v", err)
	}
	t.Cleanup(mock.Close)
	return &PostgresSink{db: mock}, mock
}

func TestPostgresSinkCreatesTableOnFirstAppend(t *testing.T) {
	sink, mock := newMockSink(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lead_logs").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("INSERT INTO lead_logs").
		WithArgs(anyLeadArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := sink.Append(context.Background(), sampleRecord("jane@example.com")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresSinkCreatesTableOnlyOnce(t *testing.T) {
	sink, mock := newMockSink(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lead_logs").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("INSERT INTO lead_logs").
		WithArgs(anyLeadArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO lead_logs").
		WithArgs(anyLeadArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ctx := context.Background()
	if err := sink.Append(ctx, sampleRecord("first@example.com")); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := sink.Append(ctx, sampleRecord("second@example.com")); err != nil {
		t.Fatalf("second append failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresSinkInsertError(t *testing.T) {
	sink, mock := newMockSink(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lead_logs").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("INSERT INTO lead_logs").
		WithArgs(anyLeadArgs()...).
		WillReturnError(errors.New("connection reset"))

	err := sink.Append(context.Background(), sampleRecord("jane@example.com"))
	if err == nil {
		t.Fatalf("expected insert error")
	}
	if !strings.Contains(err.Error(), "leadlog: insert failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostgresSinkCreateTableError(t *testing.T) {
	sink, mock := newMockSink(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lead_logs").
		WillReturnError(errors.New("permission denied"))

	err := sink.Append(context.Background(), sampleRecord("jane@example.com"))
	if err == nil || !strings.Contains(err.Error(), "leadlog: create table") {
		t.Fatalf("expected create table error, got %v", err)
	}
}

func TestPostgresSinkNilMilesWhenAbsent(t *testing.T) {
	sink, mock := newMockSink(t)

	rec := sampleRecord("jane@example.com")
	rec.TotalMiles = ""

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS lead_logs").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("INSERT INTO lead_logs").
		WithArgs(
			rec.Timestamp.UTC(), rec.LogType, rec.Name, rec.Email, rec.Phone, rec.Company,
			rec.Stops, rec.Packages, rec.VehicleType, rec.PickupDate, rec.PickupTime, rec.Urgency,
			rec.InsideDelivery, rec.Hazardous, rec.BioHazardous, rec.ExtraLaborer,
			nil, rec.Quote,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := sink.Append(context.Background(), rec); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
