// Package audio plays the demo's looping quadrant clips.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/kopimap/internal/logger"
)

// DefaultSampleRate is the speaker sample rate. Clips at other rates are
// resampled on load.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrUnsupportedFormat is returned for clips with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// clip is one fully decoded, looping sound.
type clip struct {
	name   string
	buffer *beep.Buffer
	loop   *loopStreamer
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// Manager owns the speaker and the loaded clips. At most one clip plays at
// a time.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer
	clips       []*clip
	active      int

	masterVolume float64
	muted        bool

	log *zap.Logger
}

// New creates a new audio manager. The speaker is not opened until Init.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		mixer:        &beep.Mixer{},
		active:       -1,
		masterVolume: 1.0,
		log:          logger.Named("audio"),
	}
}

// Init opens the audio device and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	m.log.Info("speaker initialized", zap.Int("sampleRate", int(m.sampleRate)))
	return nil
}

// ReleaseClips stops and drops every clip. The speaker stays open.
func (m *Manager) ReleaseClips() {
	m.lock()
	locked := m.initialized
	defer m.unlock(locked)

	m.releaseClips()
}

func (m *Manager) releaseClips() {
	for _, c := range m.clips {
		c.ctrl.Paused = true
	}
	m.mixer.Clear()
	m.clips = nil
	m.active = -1
}

// Close stops playback and releases the audio device.
func (m *Manager) Close() {
	m.lock()
	m.releaseClips()
	wasInit := m.initialized
	m.initialized = false
	m.unlock(wasInit)

	if wasInit {
		speaker.Clear()
		speaker.Close()
	}
}

// lock takes the manager mutex and, once the speaker is running, the
// speaker lock so control changes are atomic with respect to the mixer.
func (m *Manager) lock() {
	m.mu.Lock()
	if m.initialized {
		speaker.Lock()
	}
}

func (m *Manager) unlock(speakerLocked bool) {
	if speakerLocked {
		speaker.Unlock()
	}
	m.mu.Unlock()
}

// LoadClip decodes data and appends it as the next clip. It returns the
// clip's index. The clip starts paused.
func (m *Manager) LoadClip(name string, data []byte) (int, error) {
	buf, err := m.decode(name, data)
	if err != nil {
		return -1, err
	}

	c := &clip{name: name, buffer: buf}
	c.loop = newLoopStreamer(buf.Streamer(0, buf.Len()))
	c.ctrl = &beep.Ctrl{Streamer: c.loop, Paused: true}
	c.volume = &effects.Volume{Streamer: c.ctrl, Base: 2}

	m.lock()
	locked := m.initialized
	m.applyVolume(c)
	m.clips = append(m.clips, c)
	idx := len(m.clips) - 1
	m.mixer.Add(c.volume)
	m.unlock(locked)

	m.log.Info("clip loaded",
		zap.String("name", name),
		zap.Int("index", idx),
		zap.Duration("length", m.sampleRate.D(buf.Len())),
	)
	return idx, nil
}

// decode reads a whole clip into memory at the manager's sample rate.
func (m *Manager) decode(name string, data []byte) (*beep.Buffer, error) {
	streamer, format, err := decodeStream(name, data)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  m.sampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decoding %s: no samples", name)
	}
	return buf, nil
}

// decodeStream picks a decoder from the file extension.
func decodeStream(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	r := io.NopCloser(bytes.NewReader(data))

	var (
		s   beep.StreamSeekCloser
		f   beep.Format
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		s, f, err = wav.Decode(r)
	case ".mp3":
		s, f, err = mp3.Decode(r)
	case ".flac":
		s, f, err = flac.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", name, err)
	}
	return s, f, nil
}

// Play stops clip from (if valid), rewinds clip to and starts it looping.
// Calls with an out-of-range to are ignored.
func (m *Manager) Play(from, to int) {
	m.lock()
	locked := m.initialized
	defer m.unlock(locked)

	if to < 0 || to >= len(m.clips) {
		m.log.Warn("play: no such clip", zap.Int("index", to))
		return
	}

	// Whatever is actually playing stops, even if the caller's view differs.
	for _, i := range []int{from, m.active} {
		if i >= 0 && i < len(m.clips) {
			m.clips[i].ctrl.Paused = true
		}
	}

	c := m.clips[to]
	c.loop.Rewind()
	c.ctrl.Paused = false
	m.active = to

	m.log.Debug("clip playing", zap.String("name", c.name), zap.Int("index", to))
}

// Active returns the index of the playing clip, or -1.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// ClipCount returns the number of loaded clips.
func (m *Manager) ClipCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clips)
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.lock()
	locked := m.initialized
	defer m.unlock(locked)

	m.masterVolume = clamp(vol, 0, 1)
	for _, c := range m.clips {
		m.applyVolume(c)
	}
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.masterVolume
}

// SetMuted silences or restores every clip.
func (m *Manager) SetMuted(muted bool) {
	m.lock()
	locked := m.initialized
	defer m.unlock(locked)

	m.muted = muted
	for _, c := range m.clips {
		m.applyVolume(c)
	}
}

// Muted reports whether output is muted.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Manager) applyVolume(c *clip) {
	c.volume.Silent = m.muted || m.masterVolume <= 0
	c.volume.Volume = volumeToExponent(m.masterVolume)
}

// volumeToExponent converts a linear 0-1 volume into the base-2 exponent
// effects.Volume expects: 1 -> 0, 0.5 -> -1, 0.25 -> -2.
func volumeToExponent(vol float64) float64 {
	if vol <= 0 {
		return -16
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loopStreamer replays a seekable streamer forever.
type loopStreamer struct {
	src beep.StreamSeeker
}

func newLoopStreamer(src beep.StreamSeeker) *loopStreamer {
	return &loopStreamer{src: src}
}

// Rewind moves playback back to the first sample.
func (l *loopStreamer) Rewind() {
	// Seeking within an in-memory buffer cannot fail.
	_ = l.src.Seek(0)
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if l.src.Len() == 0 {
		return 0, false
	}
	filled := 0
	for filled < len(samples) {
		sn, sok := l.src.Stream(samples[filled:])
		filled += sn
		if !sok || sn == 0 {
			if err := l.src.Seek(0); err != nil {
				return filled, filled > 0
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.src.Err()
}
