package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"katalog/internal/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports every field of a product that broke a constraint.
type ValidationError struct {
	Fields map[string]string // json field name -> message
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Messages()
}

// Messages returns the field messages joined in field order.
func (e *ValidationError) Messages() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// NaN and infinities cannot be stored or rendered as JSON.
	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		panic(err)
	}
	return v
}

var fieldNames = map[string]string{
	"Name":        "name",
	"Description": "description",
	"Price":       "price",
	"Category":    "category",
}

// ValidateProduct checks p against the catalog constraints.
func ValidateProduct(p *models.Product) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate product: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		key, ok := fieldNames[e.Field()]
		if !ok {
			key = strings.ToLower(e.Field())
		}
		if _, seen := fields[key]; !seen {
			fields[key] = fieldMessage(e)
		}
	}
	return &ValidationError{Fields: fields}
}

// ParsePrice converts a submitted price. Blank text counts as a missing price.
func ParsePrice(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &ValidationError{Fields: map[string]string{"price": "Price is required"}}
	}
	price, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ValidationError{Fields: map[string]string{"price": "Price must be a number"}}
	}
	return price, nil
}

// validateCreateInput rejects a create request that leaves out a required field.
func validateCreateInput(in models.ProductInput) *ValidationError {
	fields := make(map[string]string)
	if in.Name == nil {
		fields["name"] = "Name is required"
	}
	if in.Description == nil {
		fields["description"] = "Description is required"
	}
	if in.Price == nil {
		fields["price"] = "Price is required"
	}
	if in.Category == nil {
		fields["category"] = "Category is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "finite":
		return e.Field() + " must be a finite number"
	case "oneof":
		return "Invalid " + strings.ToLower(e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
