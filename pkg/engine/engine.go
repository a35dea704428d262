// Package engine owns the audio stream lifecycle: it negotiates a stream
// with the platform driver, installs the real-time callback bridge, and
// walks the Closed -> Open -> Running state machine.
//
// Two threads are in play. The caller's thread drives Open/Start/Stop/Close
// and the queries; the driver's real-time thread invokes the bridge once per
// buffer. The engine takes no locks: all state the bridge reads is written
// only while the stream is not running, so configuration mutation and
// real-time invocation never overlap. It is the caller's responsibility not
// to call Open or Close concurrently with a running stream from another
// goroutine.
package engine

import (
	"log/slog"
	"unsafe"

	"github.com/google/uuid"
	"github.com/openfret/tunerio/pkg/devices"
	"github.com/openfret/tunerio/pkg/driver"
)

// Callback processes one buffer of audio on the driver's real-time thread.
// Either view may be empty when the corresponding channel count is zero.
// Return 0 to continue streaming, nonzero to request a stream stop.
//
// Callbacks must not allocate, lock, block, or log.
type Callback func(input, output []float32, userData any) int

// Config is the stream configuration, immutable once a stream is open. At
// least one of InputChannels/OutputChannels must be positive.
type Config struct {
	// SampleRate in Hz.
	SampleRate int
	// BufferSize in frames per callback invocation.
	BufferSize int
	InputChannels  int
	OutputChannels int
}

// DefaultConfig returns the usual tuner configuration: 48 kHz, 512-frame
// buffers, mono input, no output.
func DefaultConfig() Config {
	return Config{
		SampleRate:     48000,
		BufferSize:     512,
		InputChannels:  1,
		OutputChannels: 0,
	}
}

type streamState int

const (
	stateClosed streamState = iota
	stateOpen
	stateRunning
)

// Engine owns exactly one stream at a time. The zero-value-equivalent
// constructed engine starts closed; Open/OpenDefault are only valid again
// after Close.
type Engine struct {
	logger *slog.Logger
	host   driver.Host
	dir    *devices.Directory

	stream    driver.Stream
	state     streamState
	callback  Callback
	userData  any
	config    Config
	lastError string
}

// New returns a closed engine over the given driver host.
func New(host driver.Host) *Engine {
	return &Engine{
		logger: slog.Default().With("stream engine uuid", uuid.New()),
		host:   host,
		dir:    devices.NewDirectory(host),
	}
}

// Open negotiates a stream on the given device and installs the callback.
// The userData value is not owned by the engine; it is handed to the
// callback verbatim and must outlive the stream.
func (e *Engine) Open(deviceID int, cfg Config, callback Callback, userData any) error {
	if e.state != stateClosed {
		return e.fail(ErrAlreadyOpen)
	}

	// The bridge reads these; they must be in place before the driver owns
	// the callback.
	e.callback = callback
	e.userData = userData
	e.config = cfg

	stream, err := e.host.OpenStream(deviceID, driver.StreamConfig{
		SampleRate:     cfg.SampleRate,
		BufferSize:     cfg.BufferSize,
		InputChannels:  cfg.InputChannels,
		OutputChannels: cfg.OutputChannels,
	}, e.bridge)
	if err != nil {
		// A failed Open leaves the engine fully closed.
		e.callback = nil
		e.userData = nil
		e.config = Config{}
		return e.fail(&DriverError{Op: "open", Err: err})
	}

	e.stream = stream
	e.state = stateOpen
	e.logger.Debug(
		"stream opened",
		"deviceID", deviceID,
		"sampleRate", cfg.SampleRate,
		"bufferSize", cfg.BufferSize,
		"inputChannels", cfg.InputChannels,
		"outputChannels", cfg.OutputChannels,
	)
	return nil
}

// OpenDefault resolves the platform default input device and opens a stream
// on it.
func (e *Engine) OpenDefault(cfg Config, callback Callback, userData any) error {
	if e.state != stateClosed {
		return e.fail(ErrAlreadyOpen)
	}

	deviceID, err := e.dir.DefaultInputDevice()
	if err != nil {
		return e.fail(&DriverError{Op: "open", Err: err})
	}
	return e.Open(deviceID, cfg, callback, userData)
}

// Start instructs the driver to begin invoking the callback.
func (e *Engine) Start() error {
	if e.state == stateClosed {
		return e.fail(ErrNotOpen)
	}

	if err := e.stream.Start(); err != nil {
		return e.fail(&DriverError{Op: "start", Err: err})
	}

	e.state = stateRunning
	e.logger.Debug("stream started")
	return nil
}

// Stop instructs the driver to stop invoking the callback. A driver-level
// stop failure is reported but does not prevent the transition back to Open;
// stopping is best-effort.
func (e *Engine) Stop() error {
	if e.state != stateRunning {
		return e.fail(ErrNotRunning)
	}

	err := e.stream.Stop()
	e.state = stateOpen
	if err != nil {
		return e.fail(&DriverError{Op: "stop", Err: err})
	}

	e.logger.Debug("stream stopped")
	return nil
}

// Close releases the stream. A running stream is stopped first. Close never
// fails from the caller's perspective; teardown has no recovery action, so
// driver errors here are swallowed. Calling Close on a closed engine is a
// no-op.
func (e *Engine) Close() {
	if e.stream != nil {
		if e.state == stateRunning {
			_ = e.stream.Stop()
		}
		_ = e.stream.Close()
		e.stream = nil
		e.logger.Debug("stream closed")
	}

	e.callback = nil
	e.userData = nil
	e.config = Config{}
	e.state = stateClosed
}

// IsOpen reports whether the engine owns a stream (open or running).
func (e *Engine) IsOpen() bool {
	return e.state != stateClosed
}

// IsRunning reports whether the stream is actively invoking the callback.
func (e *Engine) IsRunning() bool {
	return e.state == stateRunning
}

// LastError returns the message of the most recent failing operation. It is
// never cleared by successful operations, so it is not a current-state
// indicator; check the error returns instead.
func (e *Engine) LastError() string {
	return e.lastError
}

// Config returns the negotiated stream configuration; the zero Config while
// closed.
func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) fail(err error) error {
	e.lastError = err.Error()
	return err
}

const sampleBytes = 4 // bytes per float32 sample on the wire

// bridge is the single translation point between the driver's raw,
// size-unchecked callback signature and the typed user callback. It runs on
// the driver's real-time thread: no allocation, no locking, no logging.
func (e *Engine) bridge(input, output []byte, frameCount uint) driver.Result {
	if e.callback == nil {
		return driver.Abort
	}

	frames := int(frameCount)
	var in, out []float32
	if n := boundedSamples(len(input), frames, e.config.InputChannels); n > 0 {
		in = unsafe.Slice((*float32)(unsafe.Pointer(&input[0])), n)
	}
	if n := boundedSamples(len(output), frames, e.config.OutputChannels); n > 0 {
		out = unsafe.Slice((*float32)(unsafe.Pointer(&output[0])), n)
	}

	if e.callback(in, out, e.userData) != 0 {
		return driver.Abort
	}
	return driver.Continue
}

// boundedSamples sizes a typed view: frames x channels samples, truncated to
// what the raw buffer can actually hold.
func boundedSamples(rawLen, frames, channels int) int {
	if channels <= 0 || rawLen == 0 {
		return 0
	}
	n := frames * channels
	if limit := rawLen / sampleBytes; n > limit {
		n = limit
	}
	return n
}
