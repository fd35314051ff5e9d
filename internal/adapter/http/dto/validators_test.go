package dto

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestAmountRequestValidation(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"1", true},
		{" 25 ", true},
		{"0.5", true},
		{"-3", true},
		{"", false},
		{"abc", false},
		{"1,000", false},
		{"12345678901234567890123456789012345678901234567890123456789012345678901234567890", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&AmountRequest{Amount: json.Number(tt.amount)})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
