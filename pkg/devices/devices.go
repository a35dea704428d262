// Package devices provides query-only enumeration of audio hardware devices
// and their capabilities.
package devices

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/openfret/tunerio/pkg/driver"
)

var errNoHost = errors.New("no audio host available")

// Descriptor describes one hardware device.
//
// The ID is platform-assigned, non-sequential, and only valid for the
// lifetime of the underlying driver session. Treat it as an opaque token,
// never as an array index. The zero Descriptor means "unknown device";
// check Name for emptiness.
type Descriptor struct {
	ID                int
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	SampleRates       []int
}

func (d Descriptor) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "ID:          %d\n", d.ID)
	fmt.Fprintf(&sb, "Name:        %s\n", d.Name)
	fmt.Fprintf(&sb, "Inputs:      %d\n", d.MaxInputChannels)
	fmt.Fprintf(&sb, "Outputs:     %d\n", d.MaxOutputChannels)
	fmt.Fprintf(&sb, "SampleRates: %v\n", d.SampleRates)
	return sb.String()
}

// Directory answers device queries against a driver host. It holds no
// mutable state after construction; concurrent enumeration calls must still
// be externally serialized, since the underlying driver makes no
// thread-safety promises of its own.
type Directory struct {
	logger *slog.Logger
	host   driver.Host
}

// NewDirectory returns a directory over the given host.
func NewDirectory(host driver.Host) *Directory {
	return &Directory{
		logger: slog.Default().With("component", "device directory"),
		host:   host,
	}
}

var (
	sharedOnce sync.Once
	shared     *Directory
)

// Shared returns the process-wide directory over the production PortAudio
// host, constructed lazily on first use. If the host cannot be initialized
// the failure is logged and every query on the returned directory reports no
// devices.
func Shared() *Directory {
	sharedOnce.Do(func() {
		host, err := driver.NewPortAudioHost()
		if err != nil {
			slog.Error("failed to initialize audio host", "err", err)
			shared = NewDirectory(nil)
			return
		}
		shared = NewDirectory(host)
	})
	return shared
}

// InputDevices returns descriptors for every device with at least one input
// channel.
func (d *Directory) InputDevices() []Descriptor {
	if d.host == nil {
		return nil
	}

	infos, err := d.host.Devices()
	if err != nil {
		d.logger.Error("failed to enumerate devices", "err", err)
		return nil
	}

	inputs := make([]Descriptor, 0, len(infos))
	for _, info := range infos {
		if info.MaxInputChannels > 0 {
			inputs = append(inputs, fromDriver(info))
		}
	}
	return inputs
}

// DefaultInputDevice resolves the platform default input device ID.
func (d *Directory) DefaultInputDevice() (int, error) {
	if d.host == nil {
		return 0, errNoHost
	}
	return d.host.DefaultInputDevice()
}

// Describe looks up a device by ID. An unknown ID yields the zero
// Descriptor, not an error; callers check the Name field.
func (d *Directory) Describe(id int) Descriptor {
	if d.host == nil {
		return Descriptor{}
	}

	infos, err := d.host.Devices()
	if err != nil {
		d.logger.Error("failed to enumerate devices", "err", err)
		return Descriptor{}
	}

	for _, info := range infos {
		if info.ID == id {
			return fromDriver(info)
		}
	}
	return Descriptor{}
}

func fromDriver(info driver.DeviceInfo) Descriptor {
	return Descriptor{
		ID:                info.ID,
		Name:              info.Name,
		MaxInputChannels:  info.MaxInputChannels,
		MaxOutputChannels: info.MaxOutputChannels,
		SampleRates:       info.SampleRates,
	}
}
