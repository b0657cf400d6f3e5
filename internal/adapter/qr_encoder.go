// Package adapter contains thin adapters over external collaborators.
// Currently it hosts the visual code encoder that turns a public card URL
// into a scannable QR image payload.
package adapter

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// defaultCodeSize is the pixel size of generated QR images.
const defaultCodeSize = 256

// ErrEmptyContent is returned when an empty string is passed for encoding.
var ErrEmptyContent = errors.New("no content to encode")

// QREncoder renders text into a PNG QR code with high error-correction
// level, so the printed code survives partial occlusion (logos, wear).
type QREncoder struct {
	size int
}

// NewQREncoder constructs a QREncoder producing images of the default size.
func NewQREncoder() *QREncoder {
	return &QREncoder{size: defaultCodeSize}
}

// Encode renders content into a PNG image payload.
//
// Returns ErrEmptyContent for empty input, or a wrapped library error when
// encoding fails (e.g. content exceeds QR capacity).
func (e *QREncoder) Encode(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	payload, err := qrcode.Encode(content, qrcode.High, e.size)
	if err != nil {
		return nil, fmt.Errorf("error encoding QR code: %w", err)
	}

	return payload, nil
}
