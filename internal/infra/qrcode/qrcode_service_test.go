package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePaymentQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GeneratePaymentQR("ravi@upi", "Ravi Kumar")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 0x50, 0x4e, 0x47}))
}

func TestGeneratePaymentQR_NoPayeeName(t *testing.T) {
	svc := NewQRCodeService(256, "H")

	png, err := svc.GeneratePaymentQR("ravi@upi", "")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestGeneratePaymentQR_UnknownLevelDefaultsToMedium(t *testing.T) {
	svc := NewQRCodeService(128, "X")

	png, err := svc.GeneratePaymentQR("shop@upi", "Mandi Stores")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
