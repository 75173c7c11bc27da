package primitive

import "crypto/cipher"

// StreamCipher bundles the possible stateful dispatch targets the chunked
// stream engine (C11) drives across repeated Update calls. Exactly one of
// BlockMode, Stream is set; ECB uses Block directly since it is stateless
// across blocks.
type StreamCipher struct {
	Block     cipher.Block
	BlockMode cipher.BlockMode
	Stream    cipher.Stream
	BlockSize int
}

// NewStreamCipher constructs the stateful cipher the engine drives one
// chunk at a time. CBC and stream modes (CFB/OFB/CTR) carry their chaining
// state across repeated calls to CryptBlocks/XORKeyStream; ECB has no
// chaining and is driven directly off the block cipher.
func NewStreamCipher(algo Algorithm, mode Mode, key, iv []byte, encrypt bool) (StreamCipher, error) {
	block, err := newBlockCipher(algo, key)
	if err != nil {
		return StreamCipher{}, err
	}
	bs := block.BlockSize()

	switch mode {
	case ModeCBC:
		if encrypt {
			return StreamCipher{Block: block, BlockMode: cipher.NewCBCEncrypter(block, iv), BlockSize: bs}, nil
		}
		return StreamCipher{Block: block, BlockMode: cipher.NewCBCDecrypter(block, iv), BlockSize: bs}, nil
	case ModeECB:
		return StreamCipher{Block: block, BlockSize: bs}, nil
	case ModeCFB:
		if encrypt {
			return StreamCipher{Block: block, Stream: cipher.NewCFBEncrypter(block, iv), BlockSize: bs}, nil
		}
		return StreamCipher{Block: block, Stream: cipher.NewCFBDecrypter(block, iv), BlockSize: bs}, nil
	case ModeOFB:
		return StreamCipher{Block: block, Stream: cipher.NewOFB(block, iv), BlockSize: bs}, nil
	case ModeCTR:
		return StreamCipher{Block: block, Stream: cipher.NewCTR(block, iv), BlockSize: bs}, nil
	default:
		return StreamCipher{}, fail("unsupported streaming cipher mode", nil)
	}
}

// ApplyPaddingStandalone exposes applyPadding to callers outside this
// package that drive the block cipher chunk by chunk (the stream engine).
func ApplyPaddingStandalone(data []byte, blockSize int, padding Padding) ([]byte, error) {
	return applyPadding(data, blockSize, padding), nil
}

// RemovePaddingStandalone exposes removePadding to the stream engine.
func RemovePaddingStandalone(data []byte, blockSize int, padding Padding) ([]byte, error) {
	return removePadding(data, blockSize, padding)
}
