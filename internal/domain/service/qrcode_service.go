package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GeneratePaymentQR renders a UPI payment string into a PNG QR code.
	GeneratePaymentQR(upiPaymentID, payeeName string) ([]byte, error)
}
