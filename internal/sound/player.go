package sound

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fitslots/internal/logger"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Cue names a sound effect.
type Cue string

const (
	CueSpin    Cue = "spin"
	CueSuccess Cue = "success"
	CueFail    Cue = "fail"
	CueClick   Cue = "click"
)

// ErrUnsupportedFormat indicates a cue file with an extension no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const resampleQuality = 4

// outputRate is the sample rate the speaker is opened with. Cues recorded at
// another rate are resampled.
var outputRate = beep.SampleRate(44100)

var (
	extensions = []string{".wav", ".ogg", ".mp3"}

	speakerOnce sync.Once
	speakerErr  error

	outputFunc = func(streamer beep.Streamer) error {
		speakerOnce.Do(func() {
			speakerErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
		})
		if speakerErr != nil {
			return fmt.Errorf("init speaker: %w", speakerErr)
		}
		speaker.Play(streamer)
		return nil
	}
)

// Player plays sound cues.
type Player interface {
	Play(cue Cue)
}

// Silent is a Player that plays nothing.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Cue) {}

// CuePlayer decodes cue files from a directory and mixes them into the
// speaker. Decoded cues are kept in memory. Failures are logged once per cue
// and ignored.
type CuePlayer struct {
	mu      sync.Mutex
	dir     string
	volume  float64
	enabled bool
	buffers map[Cue]*beep.Buffer
	warned  map[Cue]bool
}

// NewCuePlayer creates a player reading cues from dir.
func NewCuePlayer(dir string, volume float64, enabled bool) *CuePlayer {
	return &CuePlayer{
		dir:     dir,
		volume:  clampVolume(volume),
		enabled: enabled,
		buffers: make(map[Cue]*beep.Buffer),
		warned:  make(map[Cue]bool),
	}
}

// Configure updates volume and the enabled flag.
func (player *CuePlayer) Configure(volume float64, enabled bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume = clampVolume(volume)
	player.enabled = enabled
}

// Play starts the cue in the background.
func (player *CuePlayer) Play(cue Cue) {
	if err := player.play(cue); err != nil {
		player.mu.Lock()
		first := !player.warned[cue]
		player.warned[cue] = true
		player.mu.Unlock()
		if first {
			logger.Warn("play sound", "cue", cue, "err", err)
		}
	}
}

func (player *CuePlayer) play(cue Cue) error {
	player.mu.Lock()
	enabled := player.enabled
	volume := player.volume
	player.mu.Unlock()

	if !enabled || volume == 0 {
		return nil
	}
	buffer, err := player.load(cue)
	if err != nil {
		return err
	}

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if rate := buffer.Format().SampleRate; rate != outputRate {
		streamer = beep.Resample(resampleQuality, rate, outputRate, streamer)
	}
	return outputFunc(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   math.Log2(volume),
	})
}

func (player *CuePlayer) load(cue Cue) (*beep.Buffer, error) {
	player.mu.Lock()
	buffer, ok := player.buffers[cue]
	player.mu.Unlock()
	if ok {
		return buffer, nil
	}

	path, err := player.cueFile(cue)
	if err != nil {
		return nil, err
	}
	buffer, err = decodeFile(path)
	if err != nil {
		return nil, err
	}

	player.mu.Lock()
	player.buffers[cue] = buffer
	player.mu.Unlock()
	return buffer, nil
}

func (player *CuePlayer) cueFile(cue Cue) (string, error) {
	for _, extension := range extensions {
		candidate := filepath.Join(player.dir, string(cue)+extension)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("cue %s: %w", cue, os.ErrNotExist)
}

func decodeFile(path string) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue: %w", err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, format, err = wav.Decode(file)
	case ".ogg":
		stream, format, err = vorbis.Decode(file)
	case ".mp3":
		stream, format, err = mp3.Decode(file)
	default:
		file.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer stream.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return buffer, nil
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
