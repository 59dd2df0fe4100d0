package ec

import "errors"

var (
	// ErrInvalidScalar is returned when private key bytes do not form a
	// valid, nonzero, reduced scalar for the curve's group order.
	ErrInvalidScalar = errors.New("invalid private key scalar")

	// ErrInvalidPoint is returned when public key bytes do not decode to a
	// point on the curve.
	ErrInvalidPoint = errors.New("invalid public key point")

	// ErrInvalidScalarSize is returned when the private key size is wrong.
	ErrInvalidScalarSize = errors.New("invalid private key size")

	// ErrInvalidPointSize is returned when the public key size is wrong.
	ErrInvalidPointSize = errors.New("invalid public key size")

	// ErrDecryptionFailed is returned when the authentication tag does not
	// verify.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when a symmetric key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrMalformedWIF is returned when a WIF string fails to decode or its
	// checksum does not verify.
	ErrMalformedWIF = errors.New("malformed WIF private key")
)
