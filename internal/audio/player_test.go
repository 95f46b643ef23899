package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"deepwork/internal/core/timekeeper"

	"github.com/gopxl/beep/v2"
	"github.com/rs/zerolog"
)

func TestToneLengthAndRange(t *testing.T) {
	sampleRate := beep.SampleRate(8000)
	streamer := Tone(sampleRate, 440, 250*time.Millisecond)

	buffer := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(buffer)
		for _, sample := range buffer[:n] {
			if math.Abs(sample[0]) > toneVolume || sample[0] != sample[1] {
				t.Fatalf("unexpected sample %v", sample)
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if total != sampleRate.N(250*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", sampleRate.N(250*time.Millisecond), total)
	}
}

func TestPlayMissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "bell.wav")
	player := NewPlayer(map[timekeeper.Cue]string{timekeeper.CueWorkEnd: missing}, zerolog.Nop())

	err := player.Play(timekeeper.CueWorkEnd)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestPlayInvalidWAVFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.wav")
	if err := os.WriteFile(path, []byte("not a wave file"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	player := NewPlayer(map[timekeeper.Cue]string{timekeeper.CueBreakEnd: path}, zerolog.Nop())

	if err := player.Play(timekeeper.CueBreakEnd); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNopPlayer(t *testing.T) {
	var cues timekeeper.CuePlayer = Nop{}
	if err := cues.Play(timekeeper.CueWorkEnd); err != nil {
		t.Fatalf("nop play: %v", err)
	}
}
