// Package qrcode renders UPI payment QR codes.
package qrcode

import (
	"fmt"
	"net/url"

	"croptrade/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePaymentQR renders a UPI payment string into a PNG QR code.
// Any UPI app can scan the result and prefill the payee details.
func (s *qrcodeService) GeneratePaymentQR(upiPaymentID, payeeName string) ([]byte, error) {
	params := url.Values{}
	params.Set("pa", upiPaymentID)
	if payeeName != "" {
		params.Set("pn", payeeName)
	}
	params.Set("cu", "INR")

	payload := "upi://pay?" + params.Encode()

	qrCode, err := qrcode.New(payload, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
