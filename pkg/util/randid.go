package util

import "crypto/rand"

// Uppercase letters and digits only: room ids are read aloud and shared
// between participants.
const roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomRoomID returns an n-character token drawn from roomIDAlphabet.
// Uniqueness is not guaranteed; callers guard creation with a
// set-if-absent check and retry on collision.
func RandomRoomID(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("util.RandomRoomID: " + err.Error())
	}

	for i, b := range buf {
		buf[i] = roomIDAlphabet[int(b)%len(roomIDAlphabet)]
	}

	return string(buf)
}
