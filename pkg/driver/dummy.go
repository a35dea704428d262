package driver

import (
	"errors"
	"fmt"
)

// Errors a DummyHost can be scripted to return would normally come from the
// platform layer; these stand in for them.
var (
	errNoDefaultDevice = errors.New("no default device available")
	errStreamOpen      = errors.New("a stream is already open on this host")
	errNotStarted      = errors.New("stream is not started")
	errAlreadyStarted  = errors.New("stream is already started")
	errStreamClosed    = errors.New("stream is closed")
)

// DummyHost is a Host backed by a scripted device table. It opens at most one
// DummyStream at a time and records every lifecycle call so tests can assert
// on them.
//
// This host is intended to be used in testing only!
type DummyHost struct {
	// DeviceTable is the scripted device list returned by Devices.
	DeviceTable []DeviceInfo
	// DefaultInput and DefaultOutput are device IDs resolved by the
	// DefaultInputDevice/DefaultOutputDevice queries. A negative value
	// simulates a machine without such a device.
	DefaultInput  int
	DefaultOutput int

	// When set, the corresponding operation fails with this error.
	FailEnumerate error
	FailOpen      error
	FailStart     error
	FailStop      error

	// LastStream is the most recently opened stream, nil before any open.
	LastStream *DummyStream
}

// NewDummyHost returns a host with a plausible two-device table: a mono
// microphone and a stereo duplex interface.
func NewDummyHost() *DummyHost {
	return &DummyHost{
		DeviceTable: []DeviceInfo{
			{
				ID:                131,
				Name:              "Dummy Microphone",
				MaxInputChannels:  1,
				MaxOutputChannels: 0,
				SampleRates:       []int{44100, 48000},
			},
			{
				ID:                137,
				Name:              "Dummy Duplex Interface",
				MaxInputChannels:  2,
				MaxOutputChannels: 2,
				SampleRates:       []int{44100, 48000, 96000},
			},
		},
		DefaultInput:  131,
		DefaultOutput: 137,
	}
}

func (h *DummyHost) Devices() ([]DeviceInfo, error) {
	if h.FailEnumerate != nil {
		return nil, h.FailEnumerate
	}
	return h.DeviceTable, nil
}

func (h *DummyHost) DefaultInputDevice() (int, error) {
	if h.DefaultInput < 0 {
		return 0, errNoDefaultDevice
	}
	return h.DefaultInput, nil
}

func (h *DummyHost) DefaultOutputDevice() (int, error) {
	if h.DefaultOutput < 0 {
		return 0, errNoDefaultDevice
	}
	return h.DefaultOutput, nil
}

func (h *DummyHost) OpenStream(deviceID int, cfg StreamConfig, cb StreamCallback) (Stream, error) {
	if h.FailOpen != nil {
		return nil, h.FailOpen
	}
	if h.LastStream != nil && !h.LastStream.Closed {
		return nil, errStreamOpen
	}
	if cfg.InputChannels <= 0 && cfg.OutputChannels <= 0 {
		return nil, errNoChannels
	}
	if cfg.SampleRate <= 0 || cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("invalid stream config: rate %d, buffer %d", cfg.SampleRate, cfg.BufferSize)
	}

	found := false
	for _, device := range h.DeviceTable {
		if device.ID == deviceID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no device with ID %d", deviceID)
	}

	stream := &DummyStream{
		host:     h,
		DeviceID: deviceID,
		Config:   cfg,
		Callback: cb,
	}
	h.LastStream = stream
	return stream, nil
}

// DummyStream is the stream half of the dummy host. Tests drive the installed
// callback synchronously through Pump, standing in for the driver's real-time
// thread.
type DummyStream struct {
	host     *DummyHost
	DeviceID int
	Config   StreamConfig
	Callback StreamCallback

	Started bool
	Closed  bool

	StartCalls int
	StopCalls  int
	CloseCalls int
}

func (s *DummyStream) Start() error {
	s.StartCalls++
	if s.Closed {
		return errStreamClosed
	}
	if s.host.FailStart != nil {
		return s.host.FailStart
	}
	if s.Started {
		return errAlreadyStarted
	}
	s.Started = true
	return nil
}

func (s *DummyStream) Stop() error {
	s.StopCalls++
	if s.Closed {
		return errStreamClosed
	}
	if !s.Started {
		return errNotStarted
	}
	s.Started = false
	if s.host.FailStop != nil {
		return s.host.FailStop
	}
	return nil
}

func (s *DummyStream) Close() error {
	s.CloseCalls++
	s.Started = false
	s.Closed = true
	return nil
}

// Pump invokes the installed callback once with the given raw buffers, as the
// platform driver would once per buffer period. A nonzero-equivalent result
// also marks the stream stopped, mirroring an abort honored by the driver.
func (s *DummyStream) Pump(input, output []byte, frameCount uint) Result {
	result := s.Callback(input, output, frameCount)
	if result != Continue {
		s.Started = false
	}
	return result
}
