package primitive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"golang.org/x/crypto/blowfish"
)

// SymParams bundles the inputs shared by every symmetric encrypt/decrypt
// call (spec §4.1's `(algorithm, mode, padding, key, iv, input)` contract).
type SymParams struct {
	Algorithm Algorithm
	Mode      Mode
	Padding   Padding
	Key       []byte
	IV        []byte
}

func newBlockCipher(algo Algorithm, key []byte) (cipher.Block, error) {
	switch algo {
	case AES:
		b, err := aes.NewCipher(key)
		if err != nil {
			return nil, fail("aes key setup failed", err)
		}
		return b, nil
	case DES:
		b, err := des.NewCipher(key)
		if err != nil {
			return nil, fail("des key setup failed", err)
		}
		return b, nil
	case TripleDES:
		b, err := des.NewTripleDESCipher(key)
		if err != nil {
			return nil, fail("3des key setup failed", err)
		}
		return b, nil
	case Blowfish:
		b, err := blowfish.NewCipher(key)
		if err != nil {
			return nil, fail("blowfish key setup failed", err)
		}
		return b, nil
	default:
		return nil, fail("unsupported symmetric algorithm", nil)
	}
}

// EncryptSym encrypts plaintext under p, applying padding as required by
// the mode. GCM additionally returns an authentication tag.
func EncryptSym(p SymParams, plaintext []byte) (ciphertext, tag []byte, err error) {
	block, err := newBlockCipher(p.Algorithm, p.Key)
	if err != nil {
		return nil, nil, err
	}

	if p.Mode == ModeGCM {
		gcm, err := cipher.NewGCMWithNonceSize(block, len(p.IV))
		if err != nil {
			return nil, nil, fail("gcm setup failed", err)
		}
		sealed := gcm.Seal(nil, p.IV, plaintext, nil)
		tagSize := gcm.Overhead()
		return sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:], nil
	}

	blockSize := block.BlockSize()
	input := plaintext
	if requiresPadding(p.Mode) {
		input = applyPadding(plaintext, blockSize, p.Padding)
	}

	out := make([]byte, len(input))
	switch p.Mode {
	case ModeCBC:
		cipher.NewCBCEncrypter(block, p.IV).CryptBlocks(out, input)
	case ModeECB:
		encryptECB(block, out, input)
	case ModeCFB:
		cipher.NewCFBEncrypter(block, p.IV).XORKeyStream(out, input)
	case ModeOFB:
		cipher.NewOFB(block, p.IV).XORKeyStream(out, input)
	case ModeCTR:
		cipher.NewCTR(block, p.IV).XORKeyStream(out, input)
	default:
		return nil, nil, fail("unsupported cipher mode", nil)
	}
	return out, nil, nil
}

// DecryptSym decrypts ciphertext under p, removing padding as required.
func DecryptSym(p SymParams, ciphertext, tag []byte) ([]byte, error) {
	block, err := newBlockCipher(p.Algorithm, p.Key)
	if err != nil {
		return nil, err
	}

	if p.Mode == ModeGCM {
		gcm, err := cipher.NewGCMWithNonceSize(block, len(p.IV))
		if err != nil {
			return nil, fail("gcm setup failed", err)
		}
		sealed := append(append([]byte{}, ciphertext...), tag...)
		plaintext, err := gcm.Open(nil, p.IV, sealed, nil)
		if err != nil {
			return nil, fail("gcm authentication failed", err)
		}
		return plaintext, nil
	}

	blockSize := block.BlockSize()
	if len(ciphertext)%blockSize != 0 && p.Mode != ModeCFB && p.Mode != ModeOFB && p.Mode != ModeCTR {
		return nil, fail("ciphertext is not a multiple of the block size", nil)
	}

	out := make([]byte, len(ciphertext))
	switch p.Mode {
	case ModeCBC:
		cipher.NewCBCDecrypter(block, p.IV).CryptBlocks(out, ciphertext)
	case ModeECB:
		decryptECB(block, out, ciphertext)
	case ModeCFB:
		cipher.NewCFBDecrypter(block, p.IV).XORKeyStream(out, ciphertext)
	case ModeOFB:
		cipher.NewOFB(block, p.IV).XORKeyStream(out, ciphertext)
	case ModeCTR:
		cipher.NewCTR(block, p.IV).XORKeyStream(out, ciphertext)
	default:
		return nil, fail("unsupported cipher mode", nil)
	}

	if requiresPadding(p.Mode) {
		unpadded, err := removePadding(out, blockSize, p.Padding)
		if err != nil {
			return nil, err
		}
		return unpadded, nil
	}
	return out, nil
}

func requiresPadding(mode Mode) bool {
	return mode == ModeCBC || mode == ModeECB
}

func encryptECB(block cipher.Block, dst, src []byte) {
	bs := block.BlockSize()
	for i := 0; i < len(src); i += bs {
		block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}
}

func decryptECB(block cipher.Block, dst, src []byte) {
	bs := block.BlockSize()
	for i := 0; i < len(src); i += bs {
		block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}
}

func applyPadding(data []byte, blockSize int, padding Padding) []byte {
	switch padding {
	case NoPadding:
		return data
	case ZeroPadding:
		padLen := blockSize - len(data)%blockSize
		if padLen == blockSize && len(data) > 0 {
			return data
		}
		return append(append([]byte{}, data...), make([]byte, padLen)...)
	default: // PKCS7
		padLen := blockSize - len(data)%blockSize
		padding := make([]byte, padLen)
		for i := range padding {
			padding[i] = byte(padLen)
		}
		return append(append([]byte{}, data...), padding...)
	}
}

func removePadding(data []byte, blockSize int, padding Padding) ([]byte, error) {
	switch padding {
	case NoPadding:
		return data, nil
	case ZeroPadding:
		i := len(data)
		for i > 0 && data[i-1] == 0 {
			i--
		}
		return data[:i], nil
	default: // PKCS7
		if len(data) == 0 {
			return nil, fail("empty ciphertext cannot carry PKCS7 padding", nil)
		}
		padLen := int(data[len(data)-1])
		if padLen == 0 || padLen > blockSize || padLen > len(data) {
			return nil, fail("invalid PKCS7 padding", nil)
		}
		for _, b := range data[len(data)-padLen:] {
			if int(b) != padLen {
				return nil, fail("invalid PKCS7 padding", nil)
			}
		}
		return data[:len(data)-padLen], nil
	}
}
