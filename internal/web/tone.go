package web

import (
	"bytes"
	"encoding/binary"
	"math"

	"battledemo/internal/present"
)

const (
	sampleRate = 22050
	// masterGain lifts the quiet per-beep volumes to a useful level.
	masterGain = 6.0
)

type waveform int

const (
	waveSquare waveform = iota
	waveSawtooth
	waveTriangle
)

// beep is one enveloped oscillator note starting at offset seconds.
type beep struct {
	offset   float64
	freq     float64
	duration float64
	wave     waveform
	volume   float64
}

// cueTones are the chiptune beeps played for each cue.
var cueTones = map[present.Cue][]beep{
	present.CueAttack: {
		{offset: 0, freq: 280, duration: 0.10, wave: waveSawtooth, volume: 0.05},
		{offset: 0.036, freq: 180, duration: 0.08, wave: waveTriangle, volume: 0.04},
	},
	present.CueGuard: {
		{offset: 0, freq: 520, duration: 0.12, wave: waveTriangle, volume: 0.05},
	},
	present.CueVictory: {
		{offset: 0, freq: 600, duration: 0.12, wave: waveTriangle, volume: 0.05},
		{offset: 0.12, freq: 760, duration: 0.13, wave: waveTriangle, volume: 0.05},
	},
	present.CueDefeat: {
		{offset: 0, freq: 220, duration: 0.16, wave: waveSquare, volume: 0.045},
		{offset: 0.16, freq: 160, duration: 0.18, wave: waveSquare, volume: 0.045},
	},
}

// synthesizeCue renders a cue as a 16-bit mono PCM WAV file.
func synthesizeCue(c present.Cue) ([]byte, bool) {
	tones, ok := cueTones[c]
	if !ok {
		return nil, false
	}

	var length float64
	for _, b := range tones {
		// each note rings 10ms past its release
		length = max(length, b.offset+b.duration+0.01)
	}
	samples := make([]float64, int(length*sampleRate)+1)
	for _, b := range tones {
		b.mix(samples)
	}

	pcm := make([]int16, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v*masterGain))
		pcm[i] = int16(v * math.MaxInt16)
	}
	return encodeWAV(pcm, sampleRate), true
}

func (b beep) mix(out []float64) {
	start := int(b.offset * sampleRate)
	n := int((b.duration + 0.01) * sampleRate)
	for i := 0; i < n && start+i < len(out); i++ {
		t := float64(i) / sampleRate
		out[start+i] += b.envelope(t) * b.sample(t)
	}
}

// envelope ramps exponentially from 0.001 to volume over 20ms, then back
// down to 0.001 at duration.
func (b beep) envelope(t float64) float64 {
	const floor, attack = 0.001, 0.02
	switch {
	case t < attack:
		return floor * math.Pow(b.volume/floor, t/attack)
	case t < b.duration:
		return b.volume * math.Pow(floor/b.volume, (t-attack)/(b.duration-attack))
	default:
		return floor
	}
}

func (b beep) sample(t float64) float64 {
	phase := math.Mod(t*b.freq, 1)
	switch b.wave {
	case waveSawtooth:
		return 2*phase - 1
	case waveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		if phase < 0.5 {
			return 1
		}
		return -1
	}
}

func encodeWAV(pcm []int16, rate int) []byte {
	const bitsPerSample, channels = 16, 1
	dataLen := uint32(len(pcm) * 2)
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(rate*channels*bitsPerSample/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataLen)
	_ = binary.Write(&buf, binary.LittleEndian, pcm)
	return buf.Bytes()
}
