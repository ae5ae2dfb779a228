package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Info describes a decoded container.
type Info struct {
	SampleRate int
	Channels   int
}

// Decode extracts the interleaved int16 PCM samples and format info from
// a RIFF/WAVE byte sequence. It walks chunks, so containers with extra
// chunks between "fmt " and "data" still decode.
func Decode(data []byte) ([]int16, Info, error) {
	var info Info

	if len(data) < headerSize {
		return nil, info, fmt.Errorf("wav: %d bytes is shorter than a header", len(data))
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, info, fmt.Errorf("wav: missing RIFF/WAVE magic")
	}

	var pcm []byte
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			return nil, info, fmt.Errorf("wav: chunk %q overruns buffer", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, info, fmt.Errorf("wav: fmt chunk too small (%d bytes)", size)
			}
			if format := binary.LittleEndian.Uint16(data[body : body+2]); format != 1 {
				return nil, info, fmt.Errorf("wav: unsupported audio format %d, want PCM", format)
			}
			info.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			if bits := binary.LittleEndian.Uint16(data[body+14 : body+16]); bits != bitsPerSample {
				return nil, info, fmt.Errorf("wav: unsupported bit depth %d, want %d", bits, bitsPerSample)
			}
		case "data":
			pcm = data[body : body+size]
		}

		// Chunks are word-aligned
		pos = body + size + size%2
	}

	if pcm == nil {
		return nil, info, fmt.Errorf("wav: no data chunk")
	}
	if info.SampleRate == 0 {
		return nil, info, fmt.Errorf("wav: no fmt chunk")
	}

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}
	return samples, info, nil
}
