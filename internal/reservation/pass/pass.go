package pass

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"ms-booths/internal/models"

	"github.com/skip2/go-qrcode"
)

// Generator produces the QR booth pass handed to an enterprise once its
// reservation is accepted. The payload is AES-encrypted so a scanned pass
// cannot be forged by editing the plain JSON.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

type payload struct {
	BoothID      string     `json:"boothId"`
	Number       int        `json:"number"`
	EnterpriseID string     `json:"enterpriseId"`
	AcceptedAt   *time.Time `json:"acceptedAt"`
}

// Generate returns a 256x256 PNG QR code for the booth reservation.
func (g *Generator) Generate(booth models.Booth) ([]byte, error) {
	enterpriseID := ""
	if booth.EnterpriseID != nil {
		enterpriseID = *booth.EnterpriseID
	}

	data, err := json.Marshal(payload{
		BoothID:      booth.ID,
		Number:       booth.Number,
		EnterpriseID: enterpriseID,
		AcceptedAt:   booth.ReservationAcceptedAt,
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
