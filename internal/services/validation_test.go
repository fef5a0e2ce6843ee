package services_test

import (
	"errors"
	"math"
	"testing"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		message string
	}{
		{text: "1.5", want: 1.5},
		{text: " 0 ", want: 0},
		{text: "", message: "Price is required"},
		{text: "   ", message: "Price is required"},
		{text: "abc", message: "Price must be a number"},
		{text: "1e400", message: "Price must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := services.ParsePrice(tt.text)
			if tt.message == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.message, verr.Fields["price"])
		})
	}
}

func TestValidateProduct_NonFinitePrice(t *testing.T) {
	for _, price := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		p := &models.Product{Name: "Pen", Description: "Blue ink pen", Price: price, Category: models.CategoryOther}

		err := services.ValidateProduct(p)
		var verr *services.ValidationError
		require.True(t, errors.As(err, &verr), "price %v: expected ValidationError, got %v", price, err)
		assert.Equal(t, map[string]string{"price": "Price must be a finite number"}, verr.Fields)
	}
}
