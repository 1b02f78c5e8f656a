package leadlog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quickhaul/quote-backend/internal/quote"
)

// RecordHeader names every LeadRecord field in persisted order. It is
// written once as the first row of a fresh CSV file.
var RecordHeader = []string{
	"timestamp",
	"log_type",
	"name",
	"email",
	"phone",
	"company",
	"stops",
	"packages",
	"vehicle_type",
	"pickup_date",
	"pickup_time",
	"urgency",
	"inside_delivery",
	"hazardous",
	"bio_hazardous",
	"extra_laborer",
	"total_miles",
	"quote",
}

// CSVSink appends lead records to a flat CSV file. The file and its
// directory are created lazily on first use; prior rows are never
// rewritten. A mutex serializes physical writes so concurrent appends
// cannot interleave within one record.
type CSVSink struct {
	path string
	mu   sync.Mutex
}

// NewCSVSink creates a sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes one record, emitting the header row first if the file
// is empty or new.
func (s *CSVSink) Append(_ context.Context, rec quote.LeadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("leadlog: create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("leadlog: open %s: %w", s.path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("leadlog: stat %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(RecordHeader); err != nil {
			_ = f.Close()
			return fmt.Errorf("leadlog: write header: %w", err)
		}
	}
	if err := w.Write(csvRow(rec)); err != nil {
		_ = f.Close()
		return fmt.Errorf("leadlog: write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("leadlog: flush: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("leadlog: close %s: %w", s.path, err)
	}
	return nil
}

// csvRow renders the record for flat-file storage. The quote becomes a
// currency string here; the Postgres sink stores the raw numeric
// instead.
func csvRow(rec quote.LeadRecord) []string {
	return []string{
		rec.Timestamp.UTC().Format(time.RFC3339),
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
		rec.TotalMiles,
		fmt.Sprintf("$%.2f", rec.Quote),
	}
}
