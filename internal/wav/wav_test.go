package wav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// --- Quantize ---

func TestQuantizeClampsAndRounds(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2.5, 32767},
		{-3, -32767},
		{0.5, 16384}, // round(16383.5)
		{-0.00001, 0},
	}
	for _, tt := range tests {
		got := Quantize([]float64{tt.in})[0]
		if got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQuantizeRange(t *testing.T) {
	in := []float64{-10, -1.0001, -1, -0.999, 0, 0.999, 1, 1.0001, 10}
	for i, s := range Quantize(in) {
		if s < -32768 || s > 32767 {
			t.Errorf("sample %d = %d outside int16 range", i, s)
		}
	}
}

// --- Container ---

func TestContainerHeaderLayout(t *testing.T) {
	samples := []int16{0, 1, -1, 256}
	buf := Container(samples, 44100, 2)

	if len(buf) != 44+len(samples)*2 {
		t.Fatalf("container length = %d, want %d", len(buf), 44+len(samples)*2)
	}
	if !bytes.Equal(buf[0:4], []byte("RIFF")) {
		t.Errorf("offset 0-3 = %q, want RIFF", buf[0:4])
	}
	if !bytes.Equal(buf[8:12], []byte("WAVE")) {
		t.Errorf("offset 8-11 = %q, want WAVE", buf[8:12])
	}
	if !bytes.Equal(buf[12:16], []byte("fmt ")) {
		t.Errorf("offset 12-15 = %q, want 'fmt '", buf[12:16])
	}
	if !bytes.Equal(buf[36:40], []byte("data")) {
		t.Errorf("offset 36-39 = %q, want data", buf[36:40])
	}

	dataSize := len(samples) * 2
	if got := binary.LittleEndian.Uint32(buf[4:8]); got != uint32(36+dataSize) {
		t.Errorf("ChunkSize = %d, want %d", got, 36+dataSize)
	}
	if got := binary.LittleEndian.Uint32(buf[16:20]); got != 16 {
		t.Errorf("Subchunk1Size = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint16(buf[20:22]); got != 1 {
		t.Errorf("AudioFormat = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(buf[22:24]); got != 2 {
		t.Errorf("NumChannels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(buf[24:28]); got != 44100 {
		t.Errorf("SampleRate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint32(buf[28:32]); got != 44100*2*2 {
		t.Errorf("ByteRate = %d, want %d", got, 44100*2*2)
	}
	if got := binary.LittleEndian.Uint16(buf[32:34]); got != 4 {
		t.Errorf("BlockAlign = %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint16(buf[34:36]); got != 16 {
		t.Errorf("BitsPerSample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(buf[40:44]); got != uint32(dataSize) {
		t.Errorf("Subchunk2Size = %d, want %d", got, dataSize)
	}
}

func TestContainerPCMLittleEndian(t *testing.T) {
	buf := Container([]int16{256}, 44100, 2)
	// 256 = 0x0100 -> bytes [0x00, 0x01]
	if buf[44] != 0x00 || buf[45] != 0x01 {
		t.Errorf("sample 256 encoded as [%02x, %02x], want [00, 01]", buf[44], buf[45])
	}
}

func TestContainerEightSecondClipSize(t *testing.T) {
	// 8s at 44100 Hz stereo: 352800 samples/channel, 1,411,244 bytes total
	numSamples := 8 * 44100 * 2
	buf := Container(make([]int16, numSamples), 44100, 2)
	if len(buf) != 1411244 {
		t.Errorf("8s stereo container = %d bytes, want 1411244", len(buf))
	}
}

// --- Encode / Decode round trip ---

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []float64{0, 0.25, -0.25, 0.999, -0.999, 1, -1}
	data := Encode(in, 44100, 1)

	samples, info, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if info.SampleRate != 44100 || info.Channels != 1 {
		t.Errorf("info = %+v, want 44100/1", info)
	}
	want := Quantize(in)
	if len(samples) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, samples[i], want[i])
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("not a wav file at all, nope")); err == nil {
		t.Error("Decode of garbage should fail")
	}
	if _, _, err := Decode(nil); err == nil {
		t.Error("Decode of nil should fail")
	}
}

func TestSamplesToBytes(t *testing.T) {
	buf := SamplesToBytes([]int16{256, -1})
	want := []byte{0x00, 0x01, 0xff, 0xff}
	if !bytes.Equal(buf, want) {
		t.Errorf("SamplesToBytes = %v, want %v", buf, want)
	}
}

func TestContainerDataSectionMatchesSamplesToBytes(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 256}
	buf := Container(samples, 44100, 2)
	if got, want := buf[44:], SamplesToBytes(samples); !bytes.Equal(got, want) {
		t.Errorf("container data section = %v, want %v", got, want)
	}
}
