package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

var ErrInvalidSignature = errors.New("invalid signature")

// PersonalMessageHash is the hash signed by personal_sign (EIP-191 version 0x45).
func PersonalMessageHash(message string) []byte {
	h := sha3.NewLegacyKeccak256()
	fmt.Fprintf(h, "\x19Ethereum Signed Message:\n%d%s", len(message), message)
	return h.Sum(nil)
}

// PubkeyToAddress returns the lowercase 0x-prefixed Ethereum address of a key.
func PubkeyToAddress(pub *secp256k1.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	return "0x" + hex.EncodeToString(h.Sum(nil)[12:])
}

// RecoverAddress recovers the signer of a personal_sign signature given as
// 0x-hex R || S || V, with V either 0/1 or 27/28.
func RecoverAddress(message, signatureHex string) (string, error) {
	sig, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signatureHex), "0x"))
	if err != nil || len(sig) != 65 {
		return "", ErrInvalidSignature
	}

	v := sig[64]
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return "", ErrInvalidSignature
	}

	compact := make([]byte, 65)
	compact[0] = v
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, PersonalMessageHash(message))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return PubkeyToAddress(pub), nil
}

// VerifyWallet reports whether signature was produced by address over message.
func VerifyWallet(message, signature, address string) (string, bool) {
	recovered, err := RecoverAddress(message, signature)
	if err != nil {
		return "", false
	}
	return recovered, strings.EqualFold(recovered, strings.TrimSpace(address))
}
