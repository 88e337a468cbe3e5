package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator reporting fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// toValidationErrors converts validator failures into model.ValidationErrors.
// Other errors are returned unchanged.
func toValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(model.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, model.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldPath turns "OrderRequest.items[0].quantity" into "items.0.quantity".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

// messages overrides the generic wording for specific field and rule pairs.
var messages = map[string]string{
	"items.required":          "Order items are required.",
	"items.min":               model.ErrEmptyCart.Message,
	"book_id.required":        "Book ID is required for each item.",
	"quantity.min":            model.ErrInvalidQuantity.Message,
	"quantity.max":            fmt.Sprintf("Quantity may not be greater than %d.", model.MaxItemQuantity),
	"payment_method.required": "Payment method is required.",
	"payment_method.oneof":    "Payment method must be either stripe or paypal.",
	"status.oneof":            model.ErrInvalidStatus.Message,
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", label, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}
