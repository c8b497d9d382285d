package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const secretKeyLen = 32

var (
	// ErrSecretKeyTooShort - ключ шифрования короче 32 байт. Фатальная ошибка конфигурации.
	ErrSecretKeyTooShort = errors.New("encryption key must be at least 32 bytes")
	// ErrCiphertextMalformed - шифротекст не содержит разделитель iv:ciphertext.
	ErrCiphertextMalformed = errors.New("malformed ciphertext: missing iv separator")
)

// SecretBox - обратимое симметричное шифрование API-ключей провайдеров.
// AES-256-CBC со случайным 16-байтовым IV на каждый вызов; результат
// кодируется как hex(iv):hex(ciphertext).
type SecretBox struct {
	key []byte
}

// NewSecretBox создает SecretBox из операторского секрета.
// Секрет обрезается до 32 байт; более короткий секрет - ошибка конфигурации.
func NewSecretBox(secret string) (*SecretBox, error) {
	if len(secret) < secretKeyLen {
		return nil, ErrSecretKeyTooShort
	}
	return &SecretBox{key: []byte(secret)[:secretKeyLen]}, nil
}

// Encrypt шифрует plaintext. Пустая строка возвращается как есть:
// отсутствующий ключ провайдера не шифруем.
func (b *SecretBox) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(b.key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt расшифровывает значение, полученное из Encrypt.
// Пустая строка возвращается как есть. Отсутствие разделителя ':' -
// ErrCiphertextMalformed (на месте вызова трактуется как "ключ не настроен").
func (b *SecretBox) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	ivHex, ctHex, found := strings.Cut(encoded, ":")
	if !found {
		return "", ErrCiphertextMalformed
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode iv: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("invalid iv length %d", len(iv))
	}
	ciphertext, err := hex.DecodeString(ctHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("invalid ciphertext length %d", len(ciphertext))
	}

	block, err := aes.NewCipher(b.key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded data length")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, v := range data[len(data)-padLen:] {
		if int(v) != padLen {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}
