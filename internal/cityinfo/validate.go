package cityinfo

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	MinContentLength = 10
	MaxContentLength = 2000
)

var validate = validator.New()

// recipeInput carries the rules for submitted recipe content. Tags are
// evaluated left to right and stop at the first failure.
type recipeInput struct {
	Content string `validate:"required,min=10,max=2000"`
}

// ValidateContent checks recipe content against presence, then the lower
// bound, then the upper bound. Lengths are counted in runes.
func ValidateContent(content string) error {
	err := validate.Struct(recipeInput{Content: content})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	switch verrs[0].Tag() {
	case "required":
		return ErrMissingContent
	case "min":
		return ErrContentTooShort
	case "max":
		return ErrContentTooLong
	default:
		return err
	}
}
