package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Regexp(t, `^\d{4}$`, RandomDigits(4))
	}
	assert.Regexp(t, `^\d{6}$`, RandomDigits(6))
}

func TestGenerateTransactionCode(t *testing.T) {
	code := GenerateTransactionCode()
	assert.Regexp(t, `^UT\d{12}$`, code)
}
