package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/brianvoe/gofakeit/v7"
)

const alphaNum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomAlphaNum generates random alphanumeric string
// in case length <= 0 it returns an error
func RandomAlphaNum(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	randomString := make([]byte, length)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphaNum))))
		if err != nil {
			return "", err
		}
		randomString[i] = alphaNum[num.Int64()]
	}

	return string(randomString), nil
}

// RandomPoolName returns a unique looking name within the pool name limits
func RandomPoolName() string {
	return gofakeit.LetterN(12) + " " + gofakeit.Word()
}
