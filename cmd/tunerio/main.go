package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/openfret/tunerio/cmd/tunerio/config"
	"github.com/openfret/tunerio/internal/tuning"
	"github.com/openfret/tunerio/internal/utils"
	"github.com/openfret/tunerio/internal/wavout"
	"github.com/openfret/tunerio/pkg/devices"
	"github.com/openfret/tunerio/pkg/driver"
	"github.com/openfret/tunerio/pkg/dsp"
	"github.com/openfret/tunerio/pkg/engine"
	"github.com/openfret/tunerio/pkg/synth"
	"github.com/spf13/viper"
)

func main() {
	configFilePath := flag.String("configFilePath", "config.yaml", "Set the file path to the config file.")
	mode := flag.String("mode", "devices", "Run mode: devices, tone, render, or monitor.")
	outputFile := flag.String("file", "chord.wav", "Output path for render mode.")
	duration := flag.Duration("duration", 5*time.Second, "How long to run tone, render, or monitor mode.")
	flag.Parse()

	config.LoadConfig(*configFilePath)
	logFilePointer, err := utils.ConfigureDefaultLogger(
		viper.GetString("loglevel"),
		viper.GetString("logfile"),
		slog.HandlerOptions{},
	)
	if err != nil {
		slog.Error("error when configuring logger", "err", err)
		panic(err)
	}
	if logFilePointer != nil {
		defer logFilePointer.Close()
	}

	// --------------------------------------------------------------------------------

	switch *mode {
	case "devices":
		listDevices()
	case "tone":
		playTones(*duration)
	case "render":
		renderTones(*outputFile, *duration)
	case "monitor":
		monitorInput(*duration)
	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(1)
	}
}

// bankFromConfig builds a voice bank tuned per the config file.
func bankFromConfig(sampleRate float64) *synth.VoiceBank {
	tuningName := viper.GetString("tuning")
	t, ok := tuning.Named(tuningName)
	if !ok {
		slog.Warn("unknown tuning, falling back to standard", "tuning", tuningName)
		t = tuning.Standard
	}

	bank := synth.NewVoiceBank(sampleRate)
	bank.SetVoiceFrequencies(t.Frequencies())
	bank.SetGlobalVolume(float32(viper.GetFloat64("volume")))
	return bank
}

func listDevices() {
	dir := devices.Shared()
	inputs := dir.InputDevices()
	if len(inputs) == 0 {
		fmt.Println("no input devices found")
		return
	}

	for _, descriptor := range inputs {
		fmt.Println(descriptor.String())
	}
}

func playTones(duration time.Duration) {
	host, err := driver.NewPortAudioHost()
	if err != nil {
		slog.Error("error when initializing audio host", "err", err)
		panic(err)
	}
	defer host.Terminate()

	deviceID, err := host.DefaultOutputDevice()
	if err != nil {
		slog.Error("error when resolving default output device", "err", err)
		panic(err)
	}

	sampleRate := viper.GetInt("samplerate")
	bank := bankFromConfig(float64(sampleRate))

	renderCallback := func(input, output []float32, userData any) int {
		voices := userData.(*synth.VoiceBank)
		voices.Generate(output, false)
		dsp.Limit(output, dsp.DefaultLimitThreshold)
		return 0
	}

	eng := engine.New(host)
	cfg := engine.Config{
		SampleRate:     sampleRate,
		BufferSize:     viper.GetInt("buffersize"),
		InputChannels:  0,
		OutputChannels: 1,
	}
	if err := eng.Open(deviceID, cfg, renderCallback, bank); err != nil {
		slog.Error("error when opening stream", "err", err, "lastError", eng.LastError())
		panic(err)
	}
	defer eng.Close()

	if err := eng.Start(); err != nil {
		slog.Error("error when starting stream", "err", err, "lastError", eng.LastError())
		panic(err)
	}

	slog.Info("playing tuning tones", "duration", duration)
	waitFor(duration)

	if err := eng.Stop(); err != nil {
		slog.Error("error when stopping stream", "err", err)
	}
}

func renderTones(path string, duration time.Duration) {
	sampleRate := viper.GetInt("samplerate")
	bank := bankFromConfig(float64(sampleRate))

	if err := wavout.Render(path, bank, sampleRate, duration); err != nil {
		slog.Error("error when rendering tones", "err", err, "path", path)
		panic(err)
	}
	slog.Info("rendered tuning tones", "path", path, "duration", duration)
}

// meterState carries levels from the audio thread to the printer loop.
// The audio thread only stores into the atomics, never allocates or logs.
type meterState struct {
	peakBits atomic.Uint32
	rmsBits  atomic.Uint32
}

func monitorCallback(input, output []float32, userData any) int {
	meter := userData.(*meterState)
	meter.peakBits.Store(math.Float32bits(dsp.Peak(input)))
	meter.rmsBits.Store(math.Float32bits(dsp.RMS(input)))
	return 0
}

func monitorInput(duration time.Duration) {
	host, err := driver.NewPortAudioHost()
	if err != nil {
		slog.Error("error when initializing audio host", "err", err)
		panic(err)
	}
	defer host.Terminate()

	meter := &meterState{}

	eng := engine.New(host)
	cfg := engine.Config{
		SampleRate:     viper.GetInt("samplerate"),
		BufferSize:     viper.GetInt("buffersize"),
		InputChannels:  1,
		OutputChannels: 0,
	}
	if err := eng.OpenDefault(cfg, monitorCallback, meter); err != nil {
		slog.Error("error when opening input stream", "err", err, "lastError", eng.LastError())
		panic(err)
	}
	defer eng.Close()

	if err := eng.Start(); err != nil {
		slog.Error("error when starting input stream", "err", err, "lastError", eng.LastError())
		panic(err)
	}

	slog.Info("monitoring input levels", "duration", duration)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(duration)

	for {
		select {
		case <-ticker.C:
			peak := math.Float32frombits(meter.peakBits.Load())
			rms := math.Float32frombits(meter.rmsBits.Load())
			fmt.Printf("peak: %6.4f  rms: %6.4f\r", peak, rms)
		case <-interrupt:
			fmt.Println()
			return
		case <-deadline:
			fmt.Println()
			if err := eng.Stop(); err != nil {
				slog.Error("error when stopping input stream", "err", err)
			}
			return
		}
	}
}

func waitFor(duration time.Duration) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	select {
	case <-time.After(duration):
	case <-interrupt:
	}
}
