//go:build sdl2

package window

// typedef unsigned char Uint8;
// void onZenAudio(void *userdata, Uint8 *stream, int len);
import "C"
import (
	"fmt"
	"math"
	"os"
	"unsafe"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/mattn/go-pointer"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/erisdev/gosu/constant"
)

var sdlAudioFormat = beep.Format{
	SampleRate:  beep.SampleRate(constant.AUDIO_FREQ),
	NumChannels: constant.CHANNELS,
	Precision:   4,
}

// sdlAudio feeds a beep mixer to an SDL audio device.
type sdlAudio struct {
	device  sdl.AudioDeviceID
	mixer   *beep.Mixer
	samples [][2]float64 // NOTE: Access to mixer and samples must be mutually excluded by sdl.LockAudioDevice(device).
	handle  unsafe.Pointer
}

func openSDLAudio() (*sdlAudio, error) {
	a := &sdlAudio{
		mixer:   &beep.Mixer{},
		samples: make([][2]float64, constant.AUDIO_SAMPLES),
	}
	a.handle = pointer.Save(a)

	device, err := sdl.OpenAudioDevice(
		"",
		false,
		&sdl.AudioSpec{
			Freq:     constant.AUDIO_FREQ,
			Format:   sdl.AUDIO_F32,
			Channels: constant.CHANNELS,
			Samples:  constant.AUDIO_SAMPLES,
			Callback: sdl.AudioCallback(C.onZenAudio),
			UserData: a.handle,
		},
		nil,
		0,
	)
	if err != nil {
		pointer.Unref(a.handle)
		return nil, err
	}
	sdl.PauseAudioDevice(device, false)
	a.device = device
	return a, nil
}

func (a *sdlAudio) play(s beep.Streamer) {
	sdl.LockAudioDevice(a.device)
	defer sdl.UnlockAudioDevice(a.device)
	a.mixer.Add(s)
}

// locked runs fn while the audio callback cannot run.
func (a *sdlAudio) locked(fn func()) {
	sdl.LockAudioDevice(a.device)
	defer sdl.UnlockAudioDevice(a.device)
	fn()
}

func (a *sdlAudio) close() {
	sdl.CloseAudioDevice(a.device)
	pointer.Unref(a.handle)
}

//export onZenAudio
func onZenAudio(userdata unsafe.Pointer, stream *C.Uint8, length C.int) {
	a := pointer.Restore(userdata).(*sdlAudio)
	out := unsafe.Slice((*float32)(unsafe.Pointer(stream)), int(length)/4)

	frames := len(out) / constant.CHANNELS
	if cap(a.samples) < frames {
		a.samples = make([][2]float64, frames)
	}
	samples := a.samples[:frames]
	for i := range samples {
		samples[i] = [2]float64{}
	}
	a.mixer.Stream(samples)

	for i, s := range samples {
		out[i*2] = float32(s[0])
		out[i*2+1] = float32(s[1])
	}
}

// decodeBeep reads a whole audio file into a buffer at the device's rate.
func decodeBeep(path string) (*beep.Buffer, error) {
	ext, err := audioFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(file)
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("window: decoding %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(sdlAudioFormat)
	var source beep.Streamer = streamer
	if format.SampleRate != sdlAudioFormat.SampleRate {
		source = beep.Resample(constant.AUDIO_RESAMPLING, format.SampleRate, sdlAudioFormat.SampleRate, streamer)
	}
	buffer.Append(source)
	return buffer, nil
}

// volumeEffect maps a linear volume in [0, 1] onto beep's exponential one.
func volumeEffect(s beep.Streamer, volume float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	if volume <= 0 {
		v.Silent = true
	} else {
		v.Volume = math.Log2(volume)
	}
	return v
}

type sdlSample struct {
	audio  *sdlAudio
	buffer *beep.Buffer
}

func (h *SDLHost) LoadSample(path string) (Sample, error) {
	buffer, err := decodeBeep(path)
	if err != nil {
		return nil, err
	}
	return &sdlSample{h.audio, buffer}, nil
}

func (s *sdlSample) Play(volume float64) {
	s.audio.play(volumeEffect(s.buffer.Streamer(0, s.buffer.Len()), volume))
}

type sdlSong struct {
	audio   *sdlAudio
	buffer  *beep.Buffer
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	looping bool
	level   float64
}

func (h *SDLHost) LoadSong(path string) (Song, error) {
	buffer, err := decodeBeep(path)
	if err != nil {
		return nil, err
	}
	return &sdlSong{audio: h.audio, buffer: buffer, level: 1}, nil
}

// Play resumes a paused song and restarts a finished or stopped one.
// Changing looping always restarts it.
func (s *sdlSong) Play(looping bool) {
	if s.ctrl != nil && s.looping == looping && s.alive() {
		s.audio.locked(func() { s.ctrl.Paused = false })
		return
	}
	s.Stop()

	var source beep.Streamer = s.buffer.Streamer(0, s.buffer.Len())
	if looping {
		source = beep.Loop(-1, s.buffer.Streamer(0, s.buffer.Len()))
	}
	s.volume = volumeEffect(source, s.level)
	s.ctrl = &beep.Ctrl{Streamer: s.volume}
	s.looping = looping
	s.audio.play(s.ctrl)
}

func (s *sdlSong) Pause() {
	if s.ctrl != nil {
		s.audio.locked(func() { s.ctrl.Paused = true })
	}
}

// Stop detaches the song from the mixer; the mixer drops streamers whose
// Ctrl has a nil Streamer.
func (s *sdlSong) Stop() {
	if s.ctrl == nil {
		return
	}
	ctrl := s.ctrl
	s.audio.locked(func() { ctrl.Streamer = nil })
	s.ctrl = nil
	s.volume = nil
}

func (s *sdlSong) Playing() bool {
	if s.ctrl == nil {
		return false
	}
	playing := false
	s.audio.locked(func() { playing = !s.ctrl.Paused && s.ctrl.Streamer != nil && !s.finished() })
	return playing
}

// alive reports whether the song is still attached to the mixer, paused or not.
func (s *sdlSong) alive() bool {
	alive := false
	s.audio.locked(func() { alive = s.ctrl.Streamer != nil && !s.finished() })
	return alive
}

func (s *sdlSong) finished() bool {
	if s.looping {
		return false
	}
	seeker, ok := s.volume.Streamer.(beep.StreamSeeker)
	return ok && seeker.Position() >= seeker.Len()
}

func (s *sdlSong) SetVolume(volume float64) {
	s.level = volume
	if s.volume == nil {
		return
	}
	s.audio.locked(func() {
		s.volume.Silent = volume <= 0
		if volume > 0 {
			s.volume.Volume = math.Log2(volume)
		}
	})
}
