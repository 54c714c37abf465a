package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// EmployeeBadgeQR encodes an employee reference as a PNG QR code for badge
// printing.
func EmployeeBadgeQR(employeeID int, fullName, email string) ([]byte, error) {
	payload := fmt.Sprintf("employee:%d|%s|%s", employeeID, fullName, email)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}

	return png, nil
}
