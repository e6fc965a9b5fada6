package sound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fitslots/internal/logger"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

func stubOutput(t *testing.T) *[]beep.Streamer {
	t.Helper()
	old := outputFunc
	t.Cleanup(func() { outputFunc = old })

	var played []beep.Streamer
	outputFunc = func(streamer beep.Streamer) error {
		played = append(played, streamer)
		return nil
	}
	return &played
}

// writeWAV stores a mono 16-bit PCM file holding count copies of sample.
func writeWAV(t *testing.T, path string, rate int, sample int16, count int) {
	t.Helper()
	var data bytes.Buffer
	for i := 0; i < count; i++ {
		_ = binary.Write(&data, binary.LittleEndian, sample)
	}

	var file bytes.Buffer
	file.WriteString("RIFF")
	_ = binary.Write(&file, binary.LittleEndian, uint32(36+data.Len()))
	file.WriteString("WAVE")
	file.WriteString("fmt ")
	_ = binary.Write(&file, binary.LittleEndian, uint32(16))
	_ = binary.Write(&file, binary.LittleEndian, uint16(1))
	_ = binary.Write(&file, binary.LittleEndian, uint16(1))
	_ = binary.Write(&file, binary.LittleEndian, uint32(rate))
	_ = binary.Write(&file, binary.LittleEndian, uint32(rate*2))
	_ = binary.Write(&file, binary.LittleEndian, uint16(2))
	_ = binary.Write(&file, binary.LittleEndian, uint16(16))
	file.WriteString("data")
	_ = binary.Write(&file, binary.LittleEndian, uint32(data.Len()))
	file.Write(data.Bytes())

	if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMissingCuesAreSilent(t *testing.T) {
	played := stubOutput(t)
	var buffer bytes.Buffer
	logger.UseWriter(&buffer, log.WarnLevel)

	player := NewCuePlayer(t.TempDir(), 1, true)
	for _, cue := range []Cue{CueSpin, CueSuccess, CueFail, CueClick, CueFail} {
		player.Play(cue)
	}

	if len(*played) != 0 {
		t.Fatalf("played %d streams from an empty sounds dir", len(*played))
	}
	if got := strings.Count(buffer.String(), "play sound"); got != 4 {
		t.Fatalf("logged %d warnings, want one per cue:\n%s", got, buffer.String())
	}
	if _, err := player.cueFile(CueSpin); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cueFile error = %v, want not exist", err)
	}
}

func TestPlayScalesDecodedCue(t *testing.T) {
	played := stubOutput(t)
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "success.wav"), int(outputRate), 16384, 64)

	player := NewCuePlayer(dir, 0.5, true)
	player.Play(CueSuccess)
	player.Play(CueSuccess)

	if len(*played) != 2 {
		t.Fatalf("played %d streams, want 2", len(*played))
	}
	volume, ok := (*played)[1].(*effects.Volume)
	if !ok {
		t.Fatalf("stream type %T, want *effects.Volume", (*played)[1])
	}
	if volume.Volume != -1 || volume.Base != 2 {
		t.Fatalf("volume = base %v exp %v, want base 2 exp -1", volume.Base, volume.Volume)
	}

	samples := make([][2]float64, 16)
	n, ok := volume.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	if math.Abs(samples[0][0]-0.25) > 1e-3 || math.Abs(samples[0][1]-0.25) > 1e-3 {
		t.Fatalf("first sample = %v, want 0.25 on both channels", samples[0])
	}
	if len(player.buffers) != 1 {
		t.Fatalf("cached %d cues, want 1", len(player.buffers))
	}
}

func TestPlayResamplesForeignRate(t *testing.T) {
	played := stubOutput(t)
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "click.wav"), 8000, 1000, 80)

	NewCuePlayer(dir, 1, true).Play(CueClick)

	if len(*played) != 1 {
		t.Fatalf("played %d streams, want 1", len(*played))
	}
	volume := (*played)[0].(*effects.Volume)
	if _, ok := volume.Streamer.(*beep.Resampler); !ok {
		t.Fatalf("inner stream %T, want *beep.Resampler", volume.Streamer)
	}
}

func TestCorruptCueWarnsOnce(t *testing.T) {
	played := stubOutput(t)
	var buffer bytes.Buffer
	logger.UseWriter(&buffer, log.WarnLevel)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fail.ogg"), []byte("not vorbis"), 0o644); err != nil {
		t.Fatal(err)
	}
	player := NewCuePlayer(dir, 1, true)
	player.Play(CueFail)
	player.Play(CueFail)

	if len(*played) != 0 {
		t.Fatalf("played a corrupt cue")
	}
	if got := strings.Count(buffer.String(), "play sound"); got != 1 {
		t.Fatalf("logged %d warnings, want 1:\n%s", got, buffer.String())
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	played := stubOutput(t)
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "click.wav"), int(outputRate), 100, 16)
	player := NewCuePlayer(dir, 1, true)

	player.Configure(1, false)
	player.Play(CueClick)
	player.Configure(0, true)
	player.Play(CueClick)
	if len(*played) != 0 {
		t.Fatalf("disabled player played %d streams", len(*played))
	}

	player.Configure(2, true)
	player.Play(CueClick)
	if len(*played) != 1 {
		t.Fatalf("enabled player played %d streams", len(*played))
	}
	if got := (*played)[0].(*effects.Volume).Volume; got != 0 {
		t.Fatalf("clamped volume exponent = %v, want 0", got)
	}
}
