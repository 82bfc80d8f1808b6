package celebrate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

// Fixed asset paths, relative to the configured asset root
const (
	audioAssetFile  = "chime.wav"
	spriteAssetFile = "ghost.txt"
)

// Sprite is the floating character, stored as a right-facing base
// glyph row. WidthPx is its rendered width in pixel units.
type Sprite struct {
	Cells   []rune
	WidthPx float64
}

// AudioClip is a fully buffered audio cue, ready to stream from offset zero
type AudioClip struct {
	Buffer *beep.Buffer
	Format beep.Format
}

// AssetLoader loads the two optional effect assets. Both loads are
// independent; neither blocks engine initialization and neither failure
// is fatal — it only leaves that sub-effect unavailable for the session.
type AssetLoader struct {
	dir string
	log *zap.Logger
}

// NewAssetLoader creates a loader rooted at the asset directory
func NewAssetLoader(dir string, log *zap.Logger) *AssetLoader {
	return &AssetLoader{dir: dir, log: log}
}

// LoadAudio decodes the audio cue and buffers it completely, so a later
// play attempt can always stream through without touching the disk
func (l *AssetLoader) LoadAudio() (*AudioClip, error) {
	f, err := os.Open(filepath.Join(l.dir, audioAssetFile))
	if err != nil {
		return nil, fmt.Errorf("open audio asset: %w", err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode audio asset: %w", err)
	}

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio asset %s is empty", audioAssetFile)
	}

	return &AudioClip{Buffer: buf, Format: format}, nil
}

// PreloadSprite loads the ghost sprite on its own goroutine and invokes
// onLoad only on success. Fire-and-forget: callers never wait on it, and
// a failure is warned and swallowed.
func (l *AssetLoader) PreloadSprite(onLoad func(Sprite)) {
	go func() {
		sprite, err := l.loadSprite()
		if err != nil {
			l.log.Warn("ghost sprite unavailable, ghost effect disabled for this session", zap.Error(err))
			return
		}
		onLoad(sprite)
	}()
}

// loadSprite reads the first non-empty line of the sprite file
func (l *AssetLoader) loadSprite() (Sprite, error) {
	f, err := os.Open(filepath.Join(l.dir, spriteAssetFile))
	if err != nil {
		return Sprite{}, fmt.Errorf("open sprite asset: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		cells := []rune(line)
		return Sprite{
			Cells:   cells,
			WidthPx: float64(len(cells)) * PxPerCell,
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return Sprite{}, fmt.Errorf("read sprite asset: %w", err)
	}
	return Sprite{}, fmt.Errorf("sprite asset %s has no glyph row", spriteAssetFile)
}

// Mirrored returns the sprite's cells reversed for leftward travel,
// swapping direction-paired glyphs so brackets keep enclosing the body
func (s Sprite) Mirrored() []rune {
	out := make([]rune, len(s.Cells))
	for i, r := range s.Cells {
		out[len(s.Cells)-1-i] = mirrorRune(r)
	}
	return out
}

var mirrorPairs = map[rune]rune{
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'/': '\\', '\\': '/',
}

func mirrorRune(r rune) rune {
	if m, ok := mirrorPairs[r]; ok {
		return m
	}
	return r
}
