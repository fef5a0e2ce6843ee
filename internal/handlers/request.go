package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = errors.New("invalid request body")

// productForm is a form-encoded product body. Price stays text so a blank
// field is told apart from 0.
type productForm struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Price       *string `form:"price"`
	Category    *string `form:"category"`
}

// productPayload is a JSON product body.
type productPayload struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *priceText `json:"price"`
	Category    *string    `json:"category"`
}

// priceText is a JSON price before conversion. It accepts a number or a
// string holding one.
type priceText string

func (p *priceText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = priceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a number or a numeric string: %w", err)
	}
	*p = priceText(n)
	return nil
}

// parseProductInput decodes a JSON or form body. Malformed bodies wrap
// errInvalidBody; an unusable price is a *services.ValidationError.
func parseProductInput(c *fiber.Ctx) (models.ProductInput, error) {
	if c.Is("json") {
		var body productPayload
		if err := c.BodyParser(&body); err != nil {
			return models.ProductInput{}, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		in := models.ProductInput{Name: body.Name, Description: body.Description, Category: body.Category}
		return withPrice(in, (*string)(body.Price))
	}

	var body productForm
	if err := c.BodyParser(&body); err != nil {
		return models.ProductInput{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	// A field sent blank was still submitted.
	for key, field := range map[string]**string{
		"name":        &body.Name,
		"description": &body.Description,
		"price":       &body.Price,
		"category":    &body.Category,
	} {
		if *field == nil && formHas(c, key) {
			blank := ""
			*field = &blank
		}
	}
	in := models.ProductInput{Name: body.Name, Description: body.Description, Category: body.Category}
	return withPrice(in, body.Price)
}

func withPrice(in models.ProductInput, text *string) (models.ProductInput, error) {
	if text == nil {
		return in, nil
	}
	price, err := services.ParsePrice(*text)
	if err != nil {
		return in, err
	}
	in.Price = &price
	return in, nil
}

func formHas(c *fiber.Ctx, key string) bool {
	if c.Request().PostArgs().Has(key) {
		return true
	}
	if form, err := c.MultipartForm(); err == nil {
		_, ok := form.Value[key]
		return ok
	}
	return false
}
