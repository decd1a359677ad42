package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/model"
)

// ValidAccountType contains the allowed account type values.
var ValidAccountType = map[string]bool{
	model.AccountTypeBank:       true,
	model.AccountTypeCreditCard: true,
	model.AccountTypeCash:       true,
}

// ValidateAccountType checks an account type query or body value.
func ValidateAccountType(accountType string) error {
	if !ValidAccountType[accountType] {
		return &Error{Fields: map[string]string{
			"accountType": fmt.Sprintf("invalid account type: %s", accountType),
		}}
	}
	return nil
}

// ValidateCreateStatement validates a statement registration request.
func ValidateCreateStatement(req request.CreateStatementRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.CompanyID); err != nil {
		errors["companyId"] = err.Error()
	}
	if strings.TrimSpace(req.FileName) == "" {
		errors["fileName"] = "fileName is required"
	}
	if !ValidAccountType[req.AccountType] {
		errors["accountType"] = fmt.Sprintf("invalid account type: %s", req.AccountType)
	}
	if _, err := time.Parse("2006-01-02", req.PeriodStart); err != nil {
		errors["periodStart"] = err.Error()
	}
	if _, err := time.Parse("2006-01-02", req.PeriodEnd); err != nil {
		errors["periodEnd"] = err.Error()
	}
	if errors["periodStart"] == "" && errors["periodEnd"] == "" && req.PeriodEnd < req.PeriodStart {
		errors["periodEnd"] = "periodEnd must not precede periodStart"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
