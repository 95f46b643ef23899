// Package audio plays the phase-end cues.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"deepwork/internal/core/timekeeper"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog"
)

const (
	outputSampleRate = beep.SampleRate(44100)
	toneDuration     = 400 * time.Millisecond
	toneVolume       = 0.3
)

var tonePitch = map[timekeeper.Cue]float64{
	timekeeper.CueWorkEnd:  880,
	timekeeper.CueBreakEnd: 660,
}

// Player plays a WAV file per cue, or a short synthesized tone when none is configured.
type Player struct {
	files    map[timekeeper.Cue]string
	initOnce sync.Once
	initErr  error
	logger   zerolog.Logger
}

// NewPlayer creates a player. files maps cues to WAV paths; empty paths use the tone.
func NewPlayer(files map[timekeeper.Cue]string, logger zerolog.Logger) *Player {
	return &Player{
		files:  files,
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Play starts the cue asynchronously.
func (player *Player) Play(cue timekeeper.Cue) error {
	streamer, err := player.streamerFor(cue)
	if err != nil {
		return err
	}

	if err := player.initSpeaker(); err != nil {
		return err
	}

	speaker.Play(streamer)
	player.logger.Debug().Str("cue", string(cue)).Msg("cue played")
	return nil
}

func (player *Player) initSpeaker() error {
	player.initOnce.Do(func() {
		player.initErr = speaker.Init(outputSampleRate, outputSampleRate.N(100*time.Millisecond))
		if player.initErr != nil {
			player.initErr = fmt.Errorf("init speaker: %w", player.initErr)
		}
	})
	return player.initErr
}

func (player *Player) streamerFor(cue timekeeper.Cue) (beep.Streamer, error) {
	path := player.files[cue]
	if path == "" {
		return Tone(outputSampleRate, tonePitch[cue], toneDuration), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue sound %s: %w", path, err)
	}

	decoded, format, err := wav.Decode(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("decode cue sound %s: %w", path, err)
	}

	var streamer beep.Streamer = decoded
	if format.SampleRate != outputSampleRate {
		streamer = beep.Resample(4, format.SampleRate, outputSampleRate, decoded)
	}

	return beep.Seq(streamer, beep.Callback(func() {
		decoded.Close()
	})), nil
}

// Tone returns a sine beep at frequency hz that fades out over duration.
func Tone(sampleRate beep.SampleRate, hz float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	position := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}

		written := 0
		for i := range samples {
			if position >= total {
				break
			}
			envelope := 1 - float64(position)/float64(total)
			value := toneVolume * envelope * math.Sin(2*math.Pi*hz*float64(position)/float64(sampleRate))
			samples[i][0] = value
			samples[i][1] = value
			position++
			written++
		}
		return written, true
	})
}

// Nop discards cues.
type Nop struct{}

// Play does nothing.
func (Nop) Play(timekeeper.Cue) error {
	return nil
}
