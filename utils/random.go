package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// randomUint32 draws a random 32-bit integer from crypto/rand.
func randomUint32() uint32 {
	var num uint32
	if err := binary.Read(rand.Reader, binary.BigEndian, &num); err != nil {
		panic("generate random uint32 failed")
	}
	return num
}

// RandomDigits returns n random decimal digits as a zero-padded string.
func RandomDigits(n int) string {
	v := randomUint32()
	mod := uint32(1)
	for i := 0; i < n; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", n, v%mod)
}

// GenerateTransactionCode builds a date-stamped transaction code such
// as UT202508310042.
func GenerateTransactionCode() string {
	return "UT" + time.Now().Format("20060102") + RandomDigits(4)
}
