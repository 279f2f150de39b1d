package accessCode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	encodedCode := GenerateCode("london-titans", "club-secret")
	assert.NotEmpty(t, encodedCode, "Encoded code should not be empty")
}

func TestDecode(t *testing.T) {
	encodedCode := GenerateCode("london-titans", "club-secret")

	clubID, secret, err := Decode(encodedCode)

	assert.Nil(t, err, "Should not have an error during decoding")
	assert.Equal(t, "london-titans", clubID, "Decoded club id should match the original")
	assert.Equal(t, "club-secret", secret, "Decoded secret should match the original")
}

func TestDecodeDistinctCodes(t *testing.T) {
	first := GenerateCode("london-titans", "club-secret")
	second := GenerateCode("london-titans", "club-secret")
	assert.NotEqual(t, first, second, "Each issued code carries its own nonce")
}

func TestDecode_ErrorHandling(t *testing.T) {
	_, _, err := Decode("this is not a base64 string")
	assert.NotNil(t, err, "Expected an error for incorrect base64 string")
}
