package quote

import (
	"fmt"
	"strings"
	"time"
)

// Log types distinguishing why a record was written. Both may be
// written for one submission; records are never deduplicated.
const (
	LogTypePrePayment      = "pre_payment"
	LogTypeCheckoutAttempt = "checkout_attempt"
)

// LeadRecord is the flat, immutable row persisted for a submission.
// Stops and packages are collapsed into single delimited blobs so the
// record fits one line of a flat file or one table row.
type LeadRecord struct {
	Timestamp      time.Time
	LogType        string
	Name           string
	Email          string
	Phone          string
	Company        string
	Stops          string
	Packages       string
	VehicleType    string
	PickupDate     string
	PickupTime     string
	Urgency        string
	InsideDelivery string
	Hazardous      string
	BioHazardous   string
	ExtraLaborer   string
	TotalMiles     string
	Quote          float64
}

// delimiterSanitizer neutralizes the characters the stop/package blobs
// use as structure, so free text can never fracture a field.
var delimiterSanitizer = strings.NewReplacer("|", "¦", ";", ",")

// Encode flattens a validated submission into a LeadRecord. It is pure:
// the caller supplies the timestamp and log type, and the same inputs
// always produce the same record.
func Encode(s *Submission, logType string, ts time.Time) LeadRecord {
	amount, _ := s.QuoteAmount()

	var miles string
	if m, ok := s.Miles(); ok {
		miles = fmt.Sprintf("%.1f", m)
	}

	return LeadRecord{
		Timestamp:      ts,
		LogType:        logType,
		Name:           orNA(sanitize(s.ContactDetails.Name)),
		Email:          orNA(sanitize(s.ContactDetails.Email)),
		Phone:          orNA(sanitize(s.ContactDetails.Phone)),
		Company:        orNA(sanitize(s.ContactDetails.Company)),
		Stops:          encodeStops(s.StopsData),
		Packages:       encodePackages(s.PackagesData),
		VehicleType:    orNA(sanitize(s.ServiceDetails.VehicleType)),
		PickupDate:     orNA(sanitize(s.ServiceDetails.PickupDate)),
		PickupTime:     orNA(sanitize(s.ServiceDetails.PickupTime)),
		Urgency:        orNA(sanitize(s.ServiceDetails.Urgency)),
		InsideDelivery: yesNo(s.ServiceDetails.InsideDelivery),
		Hazardous:      yesNo(s.ServiceDetails.Hazardous),
		BioHazardous:   yesNo(s.ServiceDetails.BioHazardous),
		ExtraLaborer:   yesNo(s.ServiceDetails.ExtraLaborer),
		TotalMiles:     miles,
		Quote:          amount,
	}
}

// encodeStops serializes each stop as address|loadUnload|stairs and
// joins stops with ";". Sanitized text cannot contain either delimiter.
func encodeStops(stops []Stop) string {
	parts := make([]string, 0, len(stops))
	for _, stop := range stops {
		parts = append(parts, strings.Join([]string{
			orNA(sanitize(stop.Address)),
			loadUnloadLabel(stop.LoadUnload),
			stairsLabel(stop.Stairs, stop.Floor),
		}, "|"))
	}
	return strings.Join(parts, ";")
}

func loadUnloadLabel(value string) string {
	switch value {
	case LoadUnloadDriver:
		return "Driver"
	case LoadUnloadCustomer:
		return "Customer"
	case LoadUnloadDriverAssist:
		return "Driver Assist"
	default:
		return "N/A"
	}
}

func stairsLabel(stairs bool, floor FormValue) string {
	if !stairs {
		return "No"
	}
	return fmt.Sprintf("Yes, Fl: %s", orNA(sanitize(floor.String())))
}

// encodePackages serializes each package into a human-readable summary
// and joins packages with "; ".
func encodePackages(packages []Package) string {
	parts := make([]string, 0, len(packages))
	for _, p := range packages {
		parts = append(parts, fmt.Sprintf("Qty:%s, Desc:%s, Wt:%slbs, Dim:%sx%sx%s %s",
			orNA(sanitize(p.Qty.String())),
			orNA(sanitize(p.Desc)),
			orNA(sanitize(p.Weight.String())),
			orNA(sanitize(p.Length.String())),
			orNA(sanitize(p.Width.String())),
			orNA(sanitize(p.Height.String())),
			orNA(sanitize(p.Unit)),
		))
	}
	return strings.Join(parts, "; ")
}

func sanitize(text string) string {
	return delimiterSanitizer.Replace(strings.TrimSpace(text))
}

// orNA substitutes the placeholder for missing values so a blank field
// is never ambiguous with "present but empty".
func orNA(text string) string {
	if text == "" {
		return "N/A"
	}
	return text
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
