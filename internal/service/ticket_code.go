package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// newOrderID builds the client-facing correlation key, e.g.
// SSS2025-1756684800-3fa2b1.
func newOrderID() (string, error) {
	suffix, err := randomHex(3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SSS2025-%d-%s", time.Now().Unix(), strings.ToLower(suffix)), nil
}

// newTicketCode returns a 32-hex-char code. Uniqueness is enforced by
// the DB constraint; a collision is retried with a fresh code.
func newTicketCode() (string, error) {
	return randomHex(16)
}

func randomHex(n int) (string, error) {
	byt := make([]byte, n)
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// qrDataURI renders the ticket code as a PNG QR and wraps it in a data
// URI so it can be stored on the ticket row and inlined into email.
func qrDataURI(ticketCode string) (string, error) {
	png, err := qrcode.Encode(ticketCode, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
