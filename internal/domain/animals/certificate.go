package animals

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	certificatePrefix    = "VET"
	certificateRandomLen = 8
	certificateAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateCertificateNumber arma VET-<año>-<8 chars [0-9A-Z]> leyendo de rnd
// (crypto/rand.Reader si es nil).
func GenerateCertificateNumber(now time.Time, rnd io.Reader) (string, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	buf := make([]byte, certificateRandomLen)
	out := make([]byte, certificateRandomLen)
	n := len(certificateAlphabet)
	// 252 = mayor múltiplo de 36 <= 256, para no sesgar el módulo.
	const limit = 256 - 256%36

	for i := 0; i < certificateRandomLen; {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return "", fmt.Errorf("certificate: read random: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out[i] = certificateAlphabet[int(b)%n]
			i++
			if i == certificateRandomLen {
				break
			}
		}
	}

	return fmt.Sprintf("%s-%d-%s", certificatePrefix, now.Year(), string(out)), nil
}

// NormalizeCertificate aplica la misma normalización que la búsqueda pública.
func NormalizeCertificate(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
