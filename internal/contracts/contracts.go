// Package contracts stores carbon-credit steam supply contracts together with
// the price breakdown computed when they were last written.
package contracts

import (
	"fmt"
	"strings"
	"time"

	"github.com/Simplici0/steam.works/internal/pricing"
)

// Status is the lifecycle state of a contract.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed:
		return true
	}
	return false
}

// Contract is a stored contract. Snapshot is the pricing result computed
// from Pricing at the last create or update.
type Contract struct {
	ID           int64          `json:"id"`
	Reference    string         `json:"reference"`
	Title        string         `json:"title"`
	Counterparty string         `json:"counterparty"`
	Status       Status         `json:"status"`
	VintageYear  int            `json:"vintage_year,omitempty"`
	AnnualVolume float64        `json:"annual_volume"`
	Pricing      pricing.Input  `json:"pricing"`
	Snapshot     pricing.Result `json:"snapshot"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Draft holds the writable fields of a contract.
type Draft struct {
	Title        string        `json:"title"`
	Counterparty string        `json:"counterparty"`
	Status       Status        `json:"status"`
	VintageYear  int           `json:"vintage_year"`
	AnnualVolume float64       `json:"annual_volume"`
	Pricing      pricing.Input `json:"pricing"`
	Notes        string        `json:"notes"`
}

// ValidationError reports an invalid contract field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// normalize trims text fields, defaults the status, and validates the draft.
func (d Draft) normalize() (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Counterparty = strings.TrimSpace(d.Counterparty)
	d.Notes = strings.TrimSpace(d.Notes)
	d.Status = Status(strings.ToLower(strings.TrimSpace(string(d.Status))))
	if d.Status == "" {
		d.Status = StatusDraft
	}

	if d.Title == "" {
		return d, &ValidationError{Field: "title", Reason: "is required"}
	}
	if d.Counterparty == "" {
		return d, &ValidationError{Field: "counterparty", Reason: "is required"}
	}
	if !d.Status.Valid() {
		return d, &ValidationError{Field: "status", Reason: "must be draft, active or closed"}
	}
	if d.VintageYear < 0 {
		return d, &ValidationError{Field: "vintage_year", Reason: "must be greater than or equal to 0"}
	}
	if d.AnnualVolume < 0 {
		return d, &ValidationError{Field: "annual_volume", Reason: "must be greater than or equal to 0"}
	}
	return d, nil
}
