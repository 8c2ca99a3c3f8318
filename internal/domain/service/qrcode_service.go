package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateOrderQR renders a PNG QR code encoding the tracking URL for an
	// order, suitable for printing on a packing slip or receipt.
	GenerateOrderQR(orderNumber string) ([]byte, error)
}
