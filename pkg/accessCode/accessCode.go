package accessCode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samborkent/uuidv7"
)

// GenerateCode builds a single-use access code carrying the club id and its
// admin secret, padded with a uuid so every issued code is distinct.
func GenerateCode(clubID, secret string) string {
	nonce := uuidv7.New()

	code := fmt.Sprintf("%s|%s|%s", clubID, secret, nonce.String())

	return base64.StdEncoding.EncodeToString([]byte(code))
}

// Decode unpacks an access code into its club id and secret.
func Decode(code string) (clubID, secret string, err error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 3 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
