// Package wav quantizes float samples to 16-bit PCM and wraps them in a
// RIFF/WAVE container, byte-exact for downstream decoders.
package wav

import (
	"encoding/binary"
	"math"
)

const (
	headerSize    = 44
	bitsPerSample = 16
	bytesPerSamp  = 2
)

// Quantize clamps each float sample to [-1, 1] and rounds it to a 16-bit
// signed integer. Every emitted value lies in [-32768, 32767].
func Quantize(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int16(math.Round(s * 32767))
	}
	return out
}

// Container wraps interleaved PCM samples in a 44-byte RIFF/WAVE header
// plus data chunk. All multi-byte fields are little-endian.
func Container(samples []int16, sampleRate, channels int) []byte {
	dataSize := len(samples) * bytesPerSamp
	buf := make([]byte, headerSize+dataSize)

	byteRate := sampleRate * channels * bytesPerSamp
	blockAlign := channels * bytesPerSamp

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	copy(buf[headerSize:], SamplesToBytes(samples))

	return buf
}

// Encode quantizes float samples and wraps them in a container in one
// step.
func Encode(samples []float64, sampleRate, channels int) []byte {
	return Container(Quantize(samples), sampleRate, channels)
}

// SamplesToBytes serializes int16 samples as little-endian bytes, the
// layout of a container's data section.
func SamplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
