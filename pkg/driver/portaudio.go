package driver

import (
	"errors"
	"fmt"

	"github.com/drgolem/go-portaudio/portaudio"
)

var errNoChannels = errors.New("stream config must have at least one input or output channel")

// Rates probed per device when building the supported sample rate list.
// PortAudio reports a single default rate per device, so support for the
// usual audio rates is queried explicitly.
var probeRates = []int{8000, 11025, 16000, 22050, 32000, 44100, 48000, 88200, 96000, 176400, 192000}

// PortAudioHost is the production Host. It speaks to the native audio stack
// (ALSA/JACK on Linux, CoreAudio on macOS, WASAPI on Windows) through the
// PortAudio library.
type PortAudioHost struct{}

// NewPortAudioHost initializes the PortAudio library and returns a host over
// it. Call Terminate when done; PortAudio reference-counts initialization.
func NewPortAudioHost() (*PortAudioHost, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	return &PortAudioHost{}, nil
}

// Terminate releases the PortAudio library.
func (h *PortAudioHost) Terminate() error {
	return portaudio.Terminate()
}

func (h *PortAudioHost) Devices() ([]DeviceInfo, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	devices := make([]DeviceInfo, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, DeviceInfo{
			ID:                info.Index,
			Name:              info.Name,
			MaxInputChannels:  info.MaxInputChannels,
			MaxOutputChannels: info.MaxOutputChannels,
			SampleRates:       supportedRates(info),
		})
	}
	return devices, nil
}

func (h *PortAudioHost) DefaultInputDevice() (int, error) {
	info, err := portaudio.DefaultInputDevice()
	if err != nil {
		return 0, err
	}
	return info.Index, nil
}

func (h *PortAudioHost) DefaultOutputDevice() (int, error) {
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return 0, err
	}
	return info.Index, nil
}

func (h *PortAudioHost) OpenStream(deviceID int, cfg StreamConfig, cb StreamCallback) (Stream, error) {
	if cfg.InputChannels <= 0 && cfg.OutputChannels <= 0 {
		return nil, errNoChannels
	}

	info, err := portaudio.GetDeviceInfo(deviceID)
	if err != nil {
		return nil, fmt.Errorf("unknown device %d: %w", deviceID, err)
	}

	stream := &portaudio.PaStream{
		SampleRate:  float64(cfg.SampleRate),
		StreamFlags: portaudio.ClipOff,
	}
	if cfg.InputChannels > 0 {
		stream.InputParameters = &portaudio.PaStreamParameters{
			DeviceIndex:      deviceID,
			ChannelCount:     cfg.InputChannels,
			SampleFormat:     portaudio.SampleFmtFloat32,
			SuggestedLatency: info.DefaultLowInputLatency,
		}
	}
	if cfg.OutputChannels > 0 {
		stream.OutputParameters = &portaudio.PaStreamParameters{
			DeviceIndex:      deviceID,
			ChannelCount:     cfg.OutputChannels,
			SampleFormat:     portaudio.SampleFmtFloat32,
			SuggestedLatency: info.DefaultLowOutputLatency,
		}
	}

	if err := portaudio.IsFormatSupported(stream.InputParameters, stream.OutputParameters, float64(cfg.SampleRate)); err != nil {
		return nil, fmt.Errorf("unsupported stream format: %w", err)
	}

	adapter := func(input, output []byte, frameCount uint, _ *portaudio.StreamCallbackTimeInfo, _ portaudio.StreamCallbackFlags) portaudio.StreamCallbackResult {
		switch cb(input, output, frameCount) {
		case Abort:
			return portaudio.Abort
		case Complete:
			return portaudio.Complete
		default:
			return portaudio.Continue
		}
	}

	if err := stream.OpenCallback(cfg.BufferSize, adapter); err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	return &portAudioStream{stream: stream}, nil
}

// portAudioStream adapts a PortAudio callback stream to the Stream interface.
type portAudioStream struct {
	stream *portaudio.PaStream
}

func (s *portAudioStream) Start() error {
	return s.stream.StartStream()
}

func (s *portAudioStream) Stop() error {
	return s.stream.StopStream()
}

func (s *portAudioStream) Close() error {
	return s.stream.CloseCallback()
}

func supportedRates(info *portaudio.DeviceInfo) []int {
	rates := make([]int, 0, len(probeRates))
	for _, rate := range probeRates {
		var in, out *portaudio.PaStreamParameters
		if info.MaxInputChannels > 0 {
			in = &portaudio.PaStreamParameters{
				DeviceIndex:      info.Index,
				ChannelCount:     info.MaxInputChannels,
				SampleFormat:     portaudio.SampleFmtFloat32,
				SuggestedLatency: info.DefaultHighInputLatency,
			}
		}
		if info.MaxOutputChannels > 0 {
			out = &portaudio.PaStreamParameters{
				DeviceIndex:      info.Index,
				ChannelCount:     info.MaxOutputChannels,
				SampleFormat:     portaudio.SampleFmtFloat32,
				SuggestedLatency: info.DefaultHighOutputLatency,
			}
		}
		if portaudio.IsFormatSupported(in, out, float64(rate)) == nil {
			rates = append(rates, rate)
		}
	}
	return rates
}
