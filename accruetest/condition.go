package accruetest

import (
	"crypto/rand"

	"github.com/iov-one/accrue"
)

// NewCondition returns a random condition. Each call returns a
// different value, with a distinct address.
func NewCondition() accrue.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return accrue.NewCondition("sigs", "ed25519", data)
}
