//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseAccountID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseAccountID(f *testing.F) {
	f.Add("")
	f.Add("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	f.Add("alice")
	f.Add("'; DROP TABLE domains;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add(" padded ")

	f.Fuzz(func(t *testing.T, input string) {
		account, err := ParseAccountID(input)
		if err != nil {
			if !account.IsZero() {
				t.Error("rejected input produced a non-zero account")
			}
			return
		}

		roundTrip, err := ParseAccountID(account.String())
		if err != nil {
			t.Errorf("valid ID failed round-trip: %v", err)
		}
		if roundTrip != account {
			t.Error("round-trip changed ID value")
		}
		if !utf8.ValidString(input) {
			t.Error("non-UTF8 input was accepted")
		}
		if account.IsZero() {
			t.Error("accepted input produced the zero account")
		}
	})
}
