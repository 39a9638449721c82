package service

import "encoding/binary"

// The provider's speech endpoint emits headerless 16-bit mono PCM at a fixed
// sample rate. Playback layers expect a standard WAV container, so the gateway
// prepends the 44-byte RIFF header before handing audio to callers.
const (
	audioSampleRate    = 24000
	audioChannels      = 1
	audioBitsPerSample = 16
)

// wrapPCM wraps raw PCM samples in a RIFF/WAVE container header.
func wrapPCM(pcm []byte) []byte {
	blockAlign := audioChannels * audioBitsPerSample / 8
	byteRate := audioSampleRate * blockAlign
	dataLen := len(pcm)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(header[22:24], audioChannels)
	binary.LittleEndian.PutUint32(header[24:28], audioSampleRate)
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], audioBitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	return append(header, pcm...)
}
