package celebrate

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// AudioController plays the loaded celebration cue. A missing clip is the
// expected common case and a silent no-op; a playback backend failure is
// warned once and suppresses playback for the session without flipping
// the clip's availability.
type AudioController struct {
	mu            sync.Mutex
	clip          *AudioClip
	log           *zap.Logger
	initSpeaker   func(beep.Format) error
	play          func(beep.Streamer)
	speakerReady  bool
	speakerFailed bool
}

// NewAudioController creates a controller backed by the beep speaker
func NewAudioController(log *zap.Logger) *AudioController {
	return &AudioController{
		log: log,
		initSpeaker: func(format beep.Format) error {
			return speaker.Init(format.SampleRate, format.SampleRate.N(time.Millisecond*100))
		},
		play: func(s beep.Streamer) {
			speaker.Play(s)
		},
	}
}

// SetClip hands the controller the buffered cue once loading succeeds
func (c *AudioController) SetClip(clip *AudioClip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clip = clip
}

// Play streams the cue from offset zero. Never blocks, never errors
// outward: backend failures are caught, warned and swallowed so the
// other effects are unaffected.
func (c *AudioController) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clip == nil {
		return
	}

	if !c.speakerReady {
		if c.speakerFailed {
			return
		}
		if err := c.initSpeaker(c.clip.Format); err != nil {
			c.log.Warn("audio playback unavailable, celebration cue muted for this session", zap.Error(err))
			c.speakerFailed = true
			return
		}
		c.speakerReady = true
	}

	// A fresh streamer over the whole buffer resets playback to zero
	c.play(c.clip.Buffer.Streamer(0, c.clip.Buffer.Len()))
}
