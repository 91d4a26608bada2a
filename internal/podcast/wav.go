package podcast

import "encoding/binary"

// WrapWAV frames raw 16-bit PCM samples in a canonical 44-byte RIFF/WAVE
// header. The samples are copied, never mutated.
func WrapWAV(samples []byte, sampleRate, numChannels int) []byte {
	const (
		headerLen      = 44
		bytesPerSample = 2 // 16-bit
	)
	out := make([]byte, headerLen+len(samples))
	le := binary.LittleEndian

	copy(out[0:4], "RIFF")
	le.PutUint32(out[4:8], uint32(36+len(samples)))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	le.PutUint32(out[16:20], 16) // PCM fmt chunk length
	le.PutUint16(out[20:22], 1)  // uncompressed PCM
	le.PutUint16(out[22:24], uint16(numChannels))
	le.PutUint32(out[24:28], uint32(sampleRate))
	le.PutUint32(out[28:32], uint32(sampleRate*numChannels*bytesPerSample))
	le.PutUint16(out[32:34], uint16(numChannels*bytesPerSample))
	le.PutUint16(out[34:36], 16) // bits per sample

	copy(out[36:40], "data")
	le.PutUint32(out[40:44], uint32(len(samples)))
	copy(out[44:], samples)

	return out
}
