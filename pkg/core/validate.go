package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateCompanies checks the structure of companies decoded from a bundle.
// Any violation is reported as ErrInvalidFormat.
func ValidateCompanies(companies []Company) error {
	v := validatorInstance()
	var details []string
	for i := range companies {
		err := v.Struct(companies[i])
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate company %d: %w", i, err)
		}
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("companies[%d]: %s failed %q", i, fe.Namespace(), fe.Tag()))
		}
	}
	if len(details) > 0 {
		return &ValidationError{Err: ErrInvalidFormat, Details: details}
	}
	return nil
}
