package models

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrorsFromCheckout(t *testing.T) {
	RegisterJSONFieldNames()

	req := CheckoutRequest{
		Email:          "not-an-email",
		FullName:       "A",
		ShippingMethod: "drone",
		Address: ShippingAddress{
			Line1:      "1 Road",
			City:       "Accra",
			PostalCode: "00233",
			Country:    "gh",
		},
	}
	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	got := map[string]string{}
	for _, fe := range FieldErrorsFrom(err) {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"email":           "must be a valid email address",
		"full_name":       "must be at least 2",
		"shipping_method": "must be one of: standard, express",
		"address.country": "must be uppercase",
	}, got)
}

func TestFieldErrorsFromOtherError(t *testing.T) {
	assert.Nil(t, FieldErrorsFrom(assert.AnError))
}
