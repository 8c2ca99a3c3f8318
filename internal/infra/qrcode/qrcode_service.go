package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	trackingBaseURL      string
}

// NewQRCodeService creates a new QR code service instance. The QR encodes
// the public tracking URL for an order so the code works from any phone
// camera without a companion app.
func NewQRCodeService(size int, errorCorrectionLevel, trackingBaseURL string) service.QRCodeService {
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
		trackingBaseURL:      strings.TrimRight(trackingBaseURL, "/"),
	}
}

// GenerateOrderQR renders a PNG QR code encoding the order tracking URL.
func (s *qrcodeService) GenerateOrderQR(orderNumber string) ([]byte, error) {
	trackingURL := fmt.Sprintf("%s/orders/%s", s.trackingBaseURL, url.PathEscape(orderNumber))

	qrCode, err := qrcode.New(trackingURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
