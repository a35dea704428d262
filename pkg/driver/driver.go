// Package driver abstracts the platform audio backend behind a small
// interface, so the stream engine can be driven by either the production
// PortAudio host or a scripted dummy host in tests.
package driver

// Result steers the stream from inside a callback.
type Result int

const (
	// Continue keeps the stream running.
	Continue Result = iota
	// Complete drains pending buffers and then stops the stream.
	Complete
	// Abort stops the stream as soon as possible.
	Abort
)

// StreamConfig carries the negotiated stream parameters. At least one of
// InputChannels/OutputChannels must be positive for a stream to be
// meaningful; hosts reject configs where both are zero.
type StreamConfig struct {
	SampleRate     int
	BufferSize     int
	InputChannels  int
	OutputChannels int
}

// StreamCallback is the raw, size-unchecked signature the platform driver
// invokes on its real-time thread, once per buffer. Either buffer may be nil
// when the corresponding direction has no channels. Implementations must not
// allocate, lock, block, or log.
type StreamCallback func(input, output []byte, frameCount uint) Result

// DeviceInfo describes one hardware device as reported by the host.
//
// IDs are platform-assigned and not sequential; they are opaque tokens valid
// only for the lifetime of the host session, never array indices.
type DeviceInfo struct {
	ID                int
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	SampleRates       []int
}

// Stream is an open platform stream. Start, Stop and Close may block briefly
// and must only be called from non-real-time threads.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Host is the platform audio backend. Exactly two implementations exist: the
// PortAudio-backed production host and the dummy host used in tests.
type Host interface {
	Devices() ([]DeviceInfo, error)
	DefaultInputDevice() (int, error)
	DefaultOutputDevice() (int, error)
	OpenStream(deviceID int, cfg StreamConfig, cb StreamCallback) (Stream, error)
}
