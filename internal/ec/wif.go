package ec

import (
	"crypto/sha256"
	"crypto/subtle"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
)

// EncodeWIF encodes a private key as a Base58Check WIF string. The payload
// is the version byte, the 32-byte scalar, and the compressed-public-key
// suffix, followed by the first four bytes of a double SHA-256 checksum.
func EncodeWIF(priv *secp256k1.PrivateKey) string {
	payload := make([]byte, 0, 1+PrivateKeySize+1+wifChecksumSize)
	payload = append(payload, wifVersion)
	payload = append(payload, priv.Serialize()...)
	payload = append(payload, wifCompressedSuffix)

	checksum := wifChecksum(payload)
	payload = append(payload, checksum...)
	return base58.Encode(payload)
}

// DecodeWIF decodes a Base58Check WIF string back into a private key.
// Both the compressed (34-byte payload) and legacy uncompressed (33-byte
// payload) forms are accepted. Checksum or structure failures return
// ErrMalformedWIF; a structurally valid WIF whose scalar is out of range
// returns ErrInvalidScalar.
func DecodeWIF(wif string) (*secp256k1.PrivateKey, error) {
	decoded, err := base58.Decode(wif)
	if err != nil {
		return nil, ErrMalformedWIF
	}

	// version + scalar + checksum, with an optional compressed suffix.
	const legacyLen = 1 + PrivateKeySize + wifChecksumSize
	const compressedLen = legacyLen + 1
	if len(decoded) != legacyLen && len(decoded) != compressedLen {
		return nil, ErrMalformedWIF
	}

	payload := decoded[:len(decoded)-wifChecksumSize]
	checksum := decoded[len(decoded)-wifChecksumSize:]
	if subtle.ConstantTimeCompare(wifChecksum(payload), checksum) != 1 {
		return nil, ErrMalformedWIF
	}

	if payload[0] != wifVersion {
		return nil, ErrMalformedWIF
	}
	if len(decoded) == compressedLen && payload[len(payload)-1] != wifCompressedSuffix {
		return nil, ErrMalformedWIF
	}

	return ParsePrivateKey(payload[1 : 1+PrivateKeySize])
}

func wifChecksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:wifChecksumSize]
}
