package remittancetest

import (
	"crypto/rand"
	"testing"

	remittance "github.com/CallMeGwei/b9labs-remittance"
)

// NewCondition returns a random condition in the sigs extension namespace.
// Each call returns a different condition.
func NewCondition() remittance.Condition {
	data := make([]byte, 20)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return remittance.NewCondition("sigs", "ed25519", data)
}

// ParseAddress takes an address in hex format and returns its binary
// representation, failing the test on a malformed input.
func ParseAddress(t testing.TB, encodedAddress string) remittance.Address {
	t.Helper()

	addr, err := remittance.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
