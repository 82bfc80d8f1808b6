// Command genchime synthesizes the celebration audio cue and writes it
// to assets/chime.wav. Run once when regenerating assets.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

var outFlag = flag.String("out", "assets/chime.wav", "Output path for the chime")

const chimeSampleRate = beep.SampleRate(44100)

// sparkle is a short ascending arpeggio with exponential decay
type sparkle struct {
	rate  beep.SampleRate
	pos   int
	total int
}

var sparkleNotes = []float64{523.25, 659.25, 783.99, 1046.50} // C5 E5 G5 C6

func newSparkle(rate beep.SampleRate, d time.Duration) *sparkle {
	return &sparkle{rate: rate, total: rate.N(d)}
}

func (g *sparkle) Stream(samples [][2]float64) (n int, ok bool) {
	noteLen := g.total / len(sparkleNotes)
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		note := g.pos / noteLen
		if note >= len(sparkleNotes) {
			note = len(sparkleNotes) - 1
		}
		t := float64(g.pos) / float64(g.rate)
		notePos := float64(g.pos%noteLen) / float64(g.rate)

		envelope := math.Exp(-notePos * 9)
		sample := 0.3 * envelope * math.Sin(2*math.Pi*sparkleNotes[note]*t)
		// Soft octave shimmer on top
		sample += 0.08 * envelope * math.Sin(2*math.Pi*sparkleNotes[note]*2*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sparkle) Err() error { return nil }

func main() {
	flag.Parse()

	f, err := os.Create(*outFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *outFlag, err)
		os.Exit(1)
	}
	defer f.Close()

	format := beep.Format{
		SampleRate:  chimeSampleRate,
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(f, newSparkle(chimeSampleRate, 600*time.Millisecond), format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode chime: %v\n", err)
		os.Exit(1)
	}
}
