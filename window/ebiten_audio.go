//go:build !sdl2 && !raylib

package window

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/erisdev/gosu/util"
)

// decodeEbitenAudio returns the file's PCM data at the context's sample
// rate: signed 16-bit little endian stereo.
func decodeEbitenAudio(ctx *audio.Context, path string) ([]byte, error) {
	format, err := audioFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var stream io.Reader
	switch format {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(ctx.SampleRate(), file)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(ctx.SampleRate(), file)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(ctx.SampleRate(), file)
	}
	if err != nil {
		return nil, fmt.Errorf("window: decoding %s: %w", path, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("window: decoding %s: %w", path, err)
	}
	return pcm, nil
}

type ebitenSample struct {
	ctx *audio.Context
	pcm []byte
}

func (h *EbitenHost) LoadSample(path string) (Sample, error) {
	pcm, err := decodeEbitenAudio(h.audioCtx, path)
	if err != nil {
		return nil, err
	}
	return &ebitenSample{h.audioCtx, pcm}, nil
}

// Play starts a new player each time so that overlapping plays mix.
func (s *ebitenSample) Play(volume float64) {
	player := s.ctx.NewPlayerFromBytes(s.pcm)
	player.SetVolume(volume)
	player.Play()
}

type ebitenSong struct {
	ctx     *audio.Context
	pcm     []byte
	player  *audio.Player
	looping bool
	paused  bool
	volume  float64
}

func (h *EbitenHost) LoadSong(path string) (Song, error) {
	pcm, err := decodeEbitenAudio(h.audioCtx, path)
	if err != nil {
		return nil, err
	}
	return &ebitenSong{ctx: h.audioCtx, pcm: pcm, volume: 1}, nil
}

// Play resumes a paused song and restarts a finished one. Changing looping
// always restarts it.
func (s *ebitenSong) Play(looping bool) {
	if s.player != nil && s.looping == looping {
		if !s.paused && !s.player.IsPlaying() {
			if err := s.player.Rewind(); err != nil {
				util.Trace("window: cannot rewind song: %v", err)
			}
		}
		s.paused = false
		s.player.Play()
		return
	}
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}

	var src io.Reader = bytes.NewReader(s.pcm)
	if looping {
		src = audio.NewInfiniteLoop(bytes.NewReader(s.pcm), int64(len(s.pcm)))
	}
	player, err := s.ctx.NewPlayer(src)
	if err != nil {
		util.Trace("window: cannot play song: %v", err)
		return
	}
	player.SetVolume(s.volume)
	player.Play()
	s.player = player
	s.looping = looping
	s.paused = false
}

func (s *ebitenSong) Pause() {
	if s.player != nil {
		s.player.Pause()
		s.paused = true
	}
}

func (s *ebitenSong) Stop() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	s.paused = false
	if err := s.player.Rewind(); err != nil {
		util.Trace("window: cannot rewind song: %v", err)
	}
}

func (s *ebitenSong) Playing() bool {
	return s.player != nil && s.player.IsPlaying()
}

func (s *ebitenSong) SetVolume(volume float64) {
	s.volume = volume
	if s.player != nil {
		s.player.SetVolume(volume)
	}
}
