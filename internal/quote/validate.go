package quote

import (
	"fmt"
	"strings"
)

// Validate checks every rule the checkout path requires. All failures
// are combined into a single rejection; nothing is partially processed.
func (s *Submission) Validate() error {
	reasons := s.baseReasons()
	if len(s.StopsData) < 2 {
		reasons = append(reasons, "at least two stops are required")
	}
	if len(s.PackagesData) < 1 {
		reasons = append(reasons, "at least one package is required")
	}
	if strings.TrimSpace(s.ServiceDetails.VehicleType) == "" {
		reasons = append(reasons, "vehicle type is required")
	}
	return combine(reasons)
}

// ValidateForLog checks only what the log-only endpoint needs: a finite
// quote and the contact identity.
func (s *Submission) ValidateForLog() error {
	return combine(s.baseReasons())
}

func (s *Submission) baseReasons() []string {
	var reasons []string
	if _, err := s.QuoteAmount(); err != nil {
		reasons = append(reasons, "calculated quote must be a finite number")
	}
	if strings.TrimSpace(s.ContactDetails.Name) == "" {
		reasons = append(reasons, "contact name is required")
	}
	if strings.TrimSpace(s.ContactDetails.Email) == "" {
		reasons = append(reasons, "contact email is required")
	}
	return reasons
}

func combine(reasons []string) error {
	if len(reasons) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(reasons, "; "))
}
