package utils

import (
	"crypto/subtle"
	"errors"
	"log"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CodeLength is the size of the deletion code attached to every record.
const CodeLength = 10

// NewDeleteCode generates the random code that authorizes deleting a record.
// There is no uniqueness check against existing records, a collision at this
// length is not a realistic concern.
func NewDeleteCode() (string, error) {
	code, err := gonanoid.New(CodeLength)
	if err != nil {
		log.Println(err)
		return "", errors.New("Unable to generate delete code")
	}
	return code, nil
}

// CompareCode checks a presented code against the stored one in constant
// time. The code acts as a bearer token, so it gets the same comparison
// discipline as a password hash.
func CompareCode(presented, stored string) bool {
	if len(presented) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1
}
