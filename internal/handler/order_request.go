package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/KhashayarRezaei/bookverse/internal/model"
)

// itemFieldMessages are reported when an item field holds the wrong JSON type.
var itemFieldMessages = map[string]string{
	"book_id":  "Book ID must be a valid integer.",
	"quantity": "Quantity must be a valid integer.",
}

// decodeOrderRequest decodes a checkout body into req. Well-formed JSON with
// values of the wrong type yields model.ValidationErrors naming each field;
// anything else that fails to decode is returned as is.
func decodeOrderRequest(r *http.Request, req *model.OrderRequest) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	err = json.Unmarshal(body, req)
	var typeErr *json.UnmarshalTypeError
	if err == nil || !errors.As(err, &typeErr) || typeErr.Field == "" {
		return err
	}

	if verrs := orderTypeErrors(body); len(verrs) > 0 {
		return verrs
	}
	return err
}

// orderTypeErrors walks a checkout body that is a JSON object and reports
// every field whose value has the wrong type.
func orderTypeErrors(body []byte) model.ValidationErrors {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	var verrs model.ValidationErrors

	if v, ok := raw["items"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			verrs = append(verrs, model.FieldError{Field: "items", Message: "Items must be an array."})
		}
		for i, item := range items {
			verrs = append(verrs, itemTypeErrors(i, item)...)
		}
	}

	if v, ok := raw["payment_method"]; ok {
		var method string
		if err := json.Unmarshal(v, &method); err != nil {
			verrs = append(verrs, model.FieldError{Field: "payment_method", Message: "Payment method must be either stripe or paypal."})
		}
	}

	return verrs
}

func itemTypeErrors(index int, item json.RawMessage) model.ValidationErrors {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return model.ValidationErrors{{
			Field:   fmt.Sprintf("items.%d", index),
			Message: "Each item must be an object.",
		}}
	}

	var verrs model.ValidationErrors
	for _, name := range []string{"book_id", "quantity"} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		var n int64
		if err := json.Unmarshal(v, &n); err != nil {
			verrs = append(verrs, model.FieldError{
				Field:   fmt.Sprintf("items.%d.%s", index, name),
				Message: itemFieldMessages[name],
			})
		}
	}
	return verrs
}
