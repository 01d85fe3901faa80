package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duckbat/ScanCard/internal/model"
)

func sampleCard() model.BusinessCard {
	return model.BusinessCard{
		ID:      uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:    "Bob",
		Email:   "bob@x.com",
		Phone:   "123",
		Company: "Acme",
	}
}

func TestExport_ToVCard(t *testing.T) {
	got := NewExport().ToVCard(sampleCard())

	want := "BEGIN:VCARD\r\n" +
		"VERSION:3.0\r\n" +
		"FN:Bob\r\n" +
		"EMAIL:bob@x.com\r\n" +
		"TEL:123\r\n" +
		"ORG:Acme\r\n" +
		"END:VCARD\r\n"
	assert.Equal(t, want, string(got))
}

func TestExport_ToCSV(t *testing.T) {
	got := NewExport().ToCSV(sampleCard())

	want := "Name,Email,Phone,Company\r\n" +
		`"Bob","bob@x.com","123","Acme"` + "\r\n"
	assert.Equal(t, want, string(got))
}

func TestExport_ToCSV_EmbeddedQuotesAndCommas(t *testing.T) {
	card := sampleCard()
	card.Name = `Bob "The Builder"`
	card.Company = "Acme, Inc."

	got := NewExport().ToCSV(card)

	want := "Name,Email,Phone,Company\r\n" +
		`"Bob ""The Builder""","bob@x.com","123","Acme, Inc."` + "\r\n"
	assert.Equal(t, want, string(got))
}

func TestExport_Deterministic(t *testing.T) {
	e := NewExport()
	card := sampleCard()

	assert.Equal(t, e.ToVCard(card), e.ToVCard(card))
	assert.Equal(t, e.ToCSV(card), e.ToCSV(card))

	qr1, err := e.ToQRCode(card)
	require.NoError(t, err)
	qr2, err := e.ToQRCode(card)
	require.NoError(t, err)
	assert.Equal(t, qr1, qr2)
}

func TestExport_ToQRCode_IsPNG(t *testing.T) {
	png, err := NewExport().ToQRCode(sampleCard())
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
