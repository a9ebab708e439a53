package pickup

import (
	"fmt"
	"strings"
)

// QRCodec is the collaborator that renders and reads pickup-token QR codes.
// It is purely presentational; validity and redemption stay in the order
// lifecycle.
type QRCodec interface {
	// Encode renders the token hash into an image and returns its path.
	Encode(tokenHash string) (string, error)
	// Decode reads an image and returns the embedded text, empty when the
	// image is unreadable.
	Decode(imagePath string) (string, error)
}

// ── Sandbox codec ─────────────────────────────────────────────────────────────
// In production, replace with a real QR library or an imaging sidecar.

type sandboxCodec struct {
	dir string
}

// NewSandboxCodec creates a stub codec writing under dir.
func NewSandboxCodec(dir string) QRCodec {
	if dir == "" {
		dir = "/tmp/qr"
	}
	return &sandboxCodec{dir: dir}
}

func (c *sandboxCodec) Encode(tokenHash string) (string, error) {
	if tokenHash == "" {
		return "", fmt.Errorf("token hash is required")
	}
	return fmt.Sprintf("%s/%s.png", strings.TrimRight(c.dir, "/"), tokenHash), nil
}

func (c *sandboxCodec) Decode(imagePath string) (string, error) {
	// Sandbox stub: the token hash is the file stem.
	base := imagePath
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".png"), nil
}
