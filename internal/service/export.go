package service

import (
	"bytes"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/duckbat/ScanCard/internal/model"
)

// Export renders a card into downloadable byte formats. Every method is a
// pure function of the card's fields; rendering the same card twice yields
// byte-identical output.
type Export struct{}

func NewExport() *Export {
	return &Export{}
}

const qrImageSize = 256

// ToVCard renders a vCard 3.0 document. Field values are inserted verbatim;
// embedded semicolons or newlines are not escaped.
func (e *Export) ToVCard(card model.BusinessCard) []byte {
	var b bytes.Buffer
	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:3.0\r\n")
	fmt.Fprintf(&b, "FN:%s\r\n", card.Name)
	fmt.Fprintf(&b, "EMAIL:%s\r\n", card.Email)
	fmt.Fprintf(&b, "TEL:%s\r\n", card.Phone)
	fmt.Fprintf(&b, "ORG:%s\r\n", card.Company)
	b.WriteString("END:VCARD\r\n")

	return b.Bytes()
}

// ToCSV renders a header row and one quoted data row.
func (e *Export) ToCSV(card model.BusinessCard) []byte {
	var b bytes.Buffer
	b.WriteString("Name,Email,Phone,Company\r\n")
	b.WriteString(strings.Join([]string{
		quoteCSV(card.Name),
		quoteCSV(card.Email),
		quoteCSV(card.Phone),
		quoteCSV(card.Company),
	}, ","))
	b.WriteString("\r\n")

	return b.Bytes()
}

// ToQRCode renders a PNG QR code of the card's vCard payload, so scanning
// it imports the contact directly.
func (e *Export) ToQRCode(card model.BusinessCard) ([]byte, error) {
	png, err := qrcode.Encode(string(e.ToVCard(card)), qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	return png, nil
}

// quoteCSV wraps a field in double quotes, doubling embedded quotes.
func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
