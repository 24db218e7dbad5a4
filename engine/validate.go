package engine

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/propease/lease-engine/lease"
)

// =============================================================================
// INPUT VALIDATION
// =============================================================================
// Per-field rules live as validator tags on lease.LeaseInput; everything
// cross-field or money-typed is checked by hand. All failures collect into
// one ValidationError with a field→message map, and validation always runs
// to completion before any write.

var validate = validator.New()

// fieldNames maps Go struct fields onto the field keys callers see.
var fieldNames = map[string]string{
	"UnitID":          "unitId",
	"TenantID":        "tenantId",
	"TermKind":        "leaseType",
	"StartDate":       "startDate",
	"EndDate":         "endDate",
	"RentAmount":      "rentAmount",
	"SecurityDeposit": "securityDeposit",
	"DepositStatus":   "depositStatus",
	"Frequency":       "paymentFrequency",
	"PaymentDay":      "paymentDay",
	"Documents":       "documents",
}

// validateInput checks a submitted lease input. requireDocuments is true
// on creation (at least one document is mandatory) and false on edit.
func validateInput(input lease.LeaseInput, requireDocuments bool) error {
	verr := lease.NewValidationError()

	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating input: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.Add(fieldName(fe.Field()), tagMessage(fe))
		}
	}

	if input.StartDate.IsZero() {
		verr.Add("startDate", "start date is required")
	}
	if !input.RentAmount.IsPositive() {
		verr.Add("rentAmount", "rent amount must be greater than zero")
	}
	if input.SecurityDeposit.IsNegative() {
		verr.Add("securityDeposit", "security deposit cannot be negative")
	}

	if input.TermKind == lease.TermFixed {
		switch {
		case input.EndDate == nil || input.EndDate.IsZero():
			verr.Add("endDate", "end date is required for fixed-term leases")
		case !input.StartDate.IsZero() && !input.EndDate.After(input.StartDate):
			verr.Add("endDate", "end date must be after start date")
		}
	}

	if requireDocuments && len(input.Documents) == 0 {
		verr.Add("documents", "at least one lease document is required")
	}

	for i, charge := range input.Charges {
		if charge.Type == "" {
			verr.Add(fmt.Sprintf("charges[%d].type", i), "charge type is required")
		}
		if charge.Description == "" {
			verr.Add(fmt.Sprintf("charges[%d].description", i), "charge description is required")
		}
		if !charge.Amount.IsPositive() {
			verr.Add(fmt.Sprintf("charges[%d].amount", i), "charge amount must be greater than zero")
		}
	}
	for i, doc := range input.Documents {
		if doc.FileName == "" {
			verr.Add(fmt.Sprintf("documents[%d].fileName", i), "document file name is required")
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

func fieldName(goField string) string {
	if name, ok := fieldNames[goField]; ok {
		return name
	}
	return goField
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fieldName(fe.Field()) + " is required"
	case "min", "max":
		if fe.Field() == "PaymentDay" {
			return "payment day must be between 1 and 31"
		}
		return fmt.Sprintf("%s is out of range", fieldName(fe.Field()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldName(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldName(fe.Field()))
	}
}
