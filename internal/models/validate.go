package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var contextValidator = validator.New()

// Validate checks the context for ingestion-layer bugs: negative monetary or
// count fields, out-of-range ratings, unknown phases. Data sparsity (empty
// observation lists, unparsed terms) is not an error; the engine degrades
// gracefully on those.
func (c *CourseContext) Validate() error {
	if err := contextValidator.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			if coded := codedError(first); coded != nil {
				return fmt.Errorf("%w: %s", ErrInvalidContext, coded)
			}
			return fmt.Errorf("%w: field %s failed %s", ErrInvalidContext, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidContext, err)
	}
	return nil
}

func codedError(fieldError validator.FieldError) *ValidationError {
	switch fieldError.StructField() {
	case "ClearingPrice":
		return ErrNegativePrice
	case "Phase":
		return ErrUnknownPhase
	case "Rating":
		return ErrRatingOutOfRange
	}
	return nil
}
