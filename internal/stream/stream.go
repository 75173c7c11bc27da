// Package stream implements the Chunked Stream Engine (C11): a state
// machine that encrypts or decrypts an input modelled as a sequence of
// caller-supplied byte chunks, producing output byte-identical to the
// single-shot result for the same plaintext.
package stream

import (
	"sync"

	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/primitive"
)

// State is one of the engine's lifecycle states (spec §4.11).
type State string

const (
	StateCreated    State = "Created"
	StateConfigured State = "Configured"
	StateRunning    State = "Running"
	StateFinalized  State = "Finalized"
	StateFailed     State = "Failed"
)

// DefaultChunkSize is the caller-facing suggested chunk size; the engine
// itself accepts any chunk size.
const DefaultChunkSize = 64 * 1024

// Progress is emitted after every Update call.
type Progress struct {
	ProcessedBytes int64
	TotalBytes     int64
	Percentage     float64
}

// ProgressFunc receives a Progress report after each Update.
type ProgressFunc func(Progress)

// Config configures a single cipher run.
type Config struct {
	Algorithm  primitive.Algorithm
	Mode       primitive.Mode
	Padding    primitive.Padding
	Key        []byte
	IV         []byte
	TotalBytes int64
	OnProgress ProgressFunc
}

// Engine is a single-use chunked cipher run. It is safe for sequential use
// from one goroutine; callers must serialize Update/Finalize calls
// themselves if shared.
type Engine struct {
	mu             sync.Mutex
	state          State
	encrypt        bool
	cfg            Config
	cipher         primitive.StreamCipher
	buffered       []byte
	processedBytes int64
}

// New constructs an Engine in the Created state for either direction.
func New(encrypt bool) *Engine {
	return &Engine{state: StateCreated, encrypt: encrypt}
}

// Init transitions Created → Configured, binding the cipher parameters.
func (e *Engine) Init(cfg Config) *coreerrors.CoreError {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateCreated {
		return coreerrors.New(coreerrors.KindInvalidState, "engine must be Created to init").Build()
	}

	sc, err := primitive.NewStreamCipher(cfg.Algorithm, cfg.Mode, cfg.Key, cfg.IV, e.encrypt)
	if err != nil {
		e.state = StateFailed
		return coreerrors.New(coreerrors.KindEncryptionFailed, "stream cipher initialization failed").
			WithAlgorithm(string(cfg.Algorithm)).WithCause(err).Build()
	}

	e.cfg = cfg
	e.cipher = sc
	e.state = StateConfigured
	return nil
}

// Update feeds the next chunk and returns ciphertext or plaintext produced
// so far. Block modes buffer any partial trailing block internally.
func (e *Engine) Update(chunk []byte) ([]byte, *coreerrors.CoreError) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateConfigured && e.state != StateRunning {
		return nil, coreerrors.New(coreerrors.KindInvalidState, "engine must be Configured or Running to update").Build()
	}
	e.state = StateRunning

	out, cerr := e.process(chunk)
	if cerr != nil {
		e.fail()
		return nil, cerr
	}

	e.processedBytes += int64(len(chunk))
	e.reportProgress()
	return out, nil
}

// process dispatches to the stream cipher (CFB/OFB/CTR — stateful across
// calls via XORKeyStream), the CBC block mode (stateful across calls via
// CryptBlocks), or buffers for ECB, which has no chaining state and is
// driven directly off the block cipher a whole block at a time.
func (e *Engine) process(chunk []byte) ([]byte, *coreerrors.CoreError) {
	switch {
	case e.cipher.Stream != nil:
		out := make([]byte, len(chunk))
		e.cipher.Stream.XORKeyStream(out, chunk)
		return out, nil
	case e.cipher.BlockMode != nil:
		return e.processBuffered(chunk, func(dst, src []byte) { e.cipher.BlockMode.CryptBlocks(dst, src) })
	default: // ECB
		crypt := e.cipher.Block.Encrypt
		if !e.encrypt {
			crypt = e.cipher.Block.Decrypt
		}
		return e.processBuffered(chunk, func(dst, src []byte) {
			bs := e.cipher.BlockSize
			for off := 0; off < len(src); off += bs {
				crypt(dst[off:off+bs], src[off:off+bs])
			}
		})
	}
}

func (e *Engine) processBuffered(chunk []byte, crypt func(dst, src []byte)) ([]byte, *coreerrors.CoreError) {
	bs := e.cipher.BlockSize
	e.buffered = append(e.buffered, chunk...)
	completeLen := (len(e.buffered) / bs) * bs
	// On the decrypt side the last complete block may carry padding, so it
	// stays buffered until Finalize removes the padding.
	if !e.encrypt && completeLen > 0 && completeLen == len(e.buffered) {
		completeLen -= bs
	}
	if completeLen == 0 {
		return nil, nil
	}

	toProcess := e.buffered[:completeLen]
	out := make([]byte, completeLen)
	crypt(out, toProcess)
	e.buffered = append([]byte{}, e.buffered[completeLen:]...)
	return out, nil
}

// Finalize flushes buffered bytes, applies padding on the encrypt side (or
// removes it on the decrypt side), and transitions to Finalized. The
// engine is single-use after this call.
func (e *Engine) Finalize() ([]byte, *coreerrors.CoreError) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning && e.state != StateConfigured {
		return nil, coreerrors.New(coreerrors.KindInvalidState, "engine must be Running to finalize").Build()
	}

	var tail []byte
	if e.cipher.Stream == nil {
		bs := e.cipher.BlockSize
		crypt := func(dst, src []byte) { e.cipher.BlockMode.CryptBlocks(dst, src) }
		if e.cipher.BlockMode == nil {
			blockCrypt := e.cipher.Block.Encrypt
			if !e.encrypt {
				blockCrypt = e.cipher.Block.Decrypt
			}
			crypt = func(dst, src []byte) {
				for off := 0; off < len(src); off += bs {
					blockCrypt(dst[off:off+bs], src[off:off+bs])
				}
			}
		}

		if e.encrypt {
			padded, _ := primitive.ApplyPaddingStandalone(e.buffered, bs, e.cfg.Padding)
			tail = make([]byte, len(padded))
			crypt(tail, padded)
		} else {
			if len(e.buffered)%bs != 0 {
				e.fail()
				return nil, coreerrors.New(coreerrors.KindDecryptionFailed, "decryption failed").Build()
			}
			decrypted := make([]byte, len(e.buffered))
			crypt(decrypted, e.buffered)
			stripped, err := primitive.RemovePaddingStandalone(decrypted, bs, e.cfg.Padding)
			if err != nil {
				e.fail()
				return nil, coreerrors.New(coreerrors.KindDecryptionFailed, "decryption failed").Build()
			}
			tail = stripped
		}
	}

	zero(e.buffered)
	e.buffered = nil
	e.state = StateFinalized
	e.processedBytes += int64(len(tail))
	e.reportProgress()
	return tail, nil
}

func (e *Engine) fail() {
	e.state = StateFailed
	zero(e.buffered)
	e.buffered = nil
}

func (e *Engine) reportProgress() {
	if e.cfg.OnProgress == nil {
		return
	}
	p := Progress{ProcessedBytes: e.processedBytes, TotalBytes: e.cfg.TotalBytes}
	if e.cfg.TotalBytes > 0 {
		p.Percentage = float64(e.processedBytes) / float64(e.cfg.TotalBytes) * 100
	}
	e.cfg.OnProgress(p)
}

// State reports the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
