package quote

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormValue is a form field that may arrive as a JSON string, a number,
// or null, depending on the frontend build. It normalizes everything to
// its text form.
type FormValue string

// UnmarshalJSON accepts strings, numbers, booleans, and null.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(raw)
	return nil
}

func (v FormValue) String() string {
	return string(v)
}

// IsEmpty reports whether the field was absent or blank.
func (v FormValue) IsEmpty() bool {
	return strings.TrimSpace(string(v)) == ""
}

// Float parses the value as a float64.
func (v FormValue) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
}

// Contact identifies the person requesting a quote.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// Stop is one pickup or dropoff location on the route.
type Stop struct {
	Address    string    `json:"address"`
	LoadUnload string    `json:"loadUnload"`
	Stairs     bool      `json:"stairs"`
	Floor      FormValue `json:"floor,omitempty"`
}

// Load/unload responsibility values the frontend sends.
const (
	LoadUnloadDriver       = "driver"
	LoadUnloadCustomer     = "customer"
	LoadUnloadDriverAssist = "driver_assist"
)

// Package describes one item being moved. Every field is optional on
// the form.
type Package struct {
	Qty    FormValue `json:"qty,omitempty"`
	Desc   string    `json:"desc,omitempty"`
	Weight FormValue `json:"weight,omitempty"`
	Length FormValue `json:"length,omitempty"`
	Width  FormValue `json:"width,omitempty"`
	Height FormValue `json:"height,omitempty"`
	Unit   string    `json:"unit,omitempty"`
}

// ServiceDetails carries the vehicle choice and service flags.
type ServiceDetails struct {
	VehicleType    string `json:"vehicleType"`
	PickupDate     string `json:"pickupDate,omitempty"`
	PickupTime     string `json:"pickupTime,omitempty"`
	Urgency        string `json:"urgency,omitempty"`
	InsideDelivery bool   `json:"insideDelivery"`
	Hazardous      bool   `json:"hazardous"`
	BioHazardous   bool   `json:"bioHazardous"`
	ExtraLaborer   bool   `json:"extraLaborer"`
}

// Submission is one delivery-quote form payload as posted by the
// frontend. It lives for the duration of a single request.
type Submission struct {
	ContactDetails  Contact        `json:"contactDetails"`
	StopsData       []Stop         `json:"stopsData"`
	PackagesData    []Package      `json:"packagesData"`
	ServiceDetails  ServiceDetails `json:"serviceDetails"`
	TotalMiles      FormValue      `json:"totalMiles,omitempty"`
	CalculatedQuote FormValue      `json:"calculatedQuote"`
}

// QuoteAmount parses the calculated quote, requiring a finite number.
func (s *Submission) QuoteAmount() (float64, error) {
	amount, err := s.CalculatedQuote.Float()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("quote %q is not finite", s.CalculatedQuote)
	}
	return amount, nil
}

// Miles returns the computed distance when the frontend supplied one.
func (s *Submission) Miles() (float64, bool) {
	if s.TotalMiles.IsEmpty() {
		return 0, false
	}
	miles, err := s.TotalMiles.Float()
	if err != nil || math.IsNaN(miles) || math.IsInf(miles, 0) {
		return 0, false
	}
	return miles, true
}
