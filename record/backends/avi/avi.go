// Package avi provides a Motion-JPEG AVI encoder for record.
//
// Each frame is JPEG-compressed into a '00dc' chunk of a RIFF AVI file with
// a single video stream and an idx1 index, which every mainstream player
// accepts. Frames are buffered compressed until End.
//
// Importing this package registers the encoder as "avi":
//
//	import _ "github.com/gogpu/palette/record/backends/avi"
package avi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/jpeg"
	"io"

	"github.com/gogpu/palette/record"
)

// DefaultQuality is the JPEG quality used by the registered encoder.
const DefaultQuality = 90

func init() {
	record.Register("avi", func() record.Encoder {
		return New(DefaultQuality)
	})
}

// AVI header flags.
const (
	avifHasIndex   = 0x00000010
	aviifKeyframe  = 0x00000010
	mainHeaderSize = 56
	streamHdrSize  = 56
	bitmapInfoSize = 40
)

// ErrNotStarted is returned when frames are written before Begin.
var ErrNotStarted = errors.New("avi: encoder not started")

// Encoder writes Motion-JPEG AVI files.
type Encoder struct {
	quality int

	w             io.Writer
	width, height int
	fps           int
	chunks        [][]byte
	maxChunk      int
	jpegBuf       bytes.Buffer
}

// New creates an encoder compressing frames at the given JPEG quality
// (1-100).
func New(quality int) *Encoder {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Encoder{quality: quality}
}

// Extension implements record.Encoder.
func (e *Encoder) Extension() string { return ".avi" }

// Begin implements record.Encoder.
func (e *Encoder) Begin(w io.Writer, width, height, fps int) error {
	if width <= 0 || height <= 0 {
		return errors.New("avi: invalid frame size")
	}
	if fps <= 0 {
		return errors.New("avi: invalid frame rate")
	}
	e.w = w
	e.width, e.height, e.fps = width, height, fps
	e.chunks = e.chunks[:0]
	e.maxChunk = 0
	return nil
}

// WriteFrame implements record.Encoder.
func (e *Encoder) WriteFrame(f *record.Frame) error {
	if e.w == nil {
		return ErrNotStarted
	}
	e.jpegBuf.Reset()
	if err := jpeg.Encode(&e.jpegBuf, f.Image(), &jpeg.Options{Quality: e.quality}); err != nil {
		return err
	}
	data := bytes.Clone(e.jpegBuf.Bytes())
	e.chunks = append(e.chunks, data)
	e.maxChunk = max(e.maxChunk, len(data))
	return nil
}

// End implements record.Encoder. It writes the complete file.
func (e *Encoder) End() error {
	if e.w == nil {
		return ErrNotStarted
	}
	defer func() {
		e.w = nil
		e.chunks = nil
	}()

	movi, index := e.buildMovi()
	hdrl := e.buildHeaders()

	var body bytes.Buffer
	body.WriteString("AVI ")
	writeList(&body, "hdrl", hdrl)
	writeList(&body, "movi", movi)
	writeChunk(&body, "idx1", index)

	var out bytes.Buffer
	out.Grow(body.Len() + 8)
	writeChunk(&out, "RIFF", body.Bytes())
	_, err := out.WriteTo(e.w)
	return err
}

func (e *Encoder) buildHeaders() []byte {
	n := uint32(len(e.chunks))
	usPerFrame := uint32(1000000 / e.fps)

	avih := make([]byte, mainHeaderSize)
	le := binary.LittleEndian
	le.PutUint32(avih[0:], usPerFrame)
	le.PutUint32(avih[4:], uint32(e.maxChunk*e.fps))
	le.PutUint32(avih[12:], avifHasIndex)
	le.PutUint32(avih[16:], n)
	le.PutUint32(avih[24:], 1) // streams
	le.PutUint32(avih[28:], uint32(e.maxChunk))
	le.PutUint32(avih[32:], uint32(e.width))
	le.PutUint32(avih[36:], uint32(e.height))

	strh := make([]byte, streamHdrSize)
	copy(strh[0:], "vids")
	copy(strh[4:], "MJPG")
	le.PutUint32(strh[20:], 1) // scale
	le.PutUint32(strh[24:], uint32(e.fps))
	le.PutUint32(strh[32:], n)
	le.PutUint32(strh[36:], uint32(e.maxChunk))
	le.PutUint32(strh[40:], 0xFFFFFFFF) // default quality
	le.PutUint16(strh[52:], uint16(e.width))
	le.PutUint16(strh[54:], uint16(e.height))

	strf := make([]byte, bitmapInfoSize)
	le.PutUint32(strf[0:], bitmapInfoSize)
	le.PutUint32(strf[4:], uint32(e.width))
	le.PutUint32(strf[8:], uint32(e.height))
	le.PutUint16(strf[12:], 1)  // planes
	le.PutUint16(strf[14:], 24) // bit count
	copy(strf[16:], "MJPG")
	le.PutUint32(strf[20:], uint32(e.width*e.height*3))

	var strl bytes.Buffer
	writeChunk(&strl, "strh", strh)
	writeChunk(&strl, "strf", strf)

	var hdrl bytes.Buffer
	writeChunk(&hdrl, "avih", avih)
	writeList(&hdrl, "strl", strl.Bytes())
	return hdrl.Bytes()
}

// buildMovi lays out the frame chunks and their idx1 entries. Index
// offsets are relative to the "movi" list type field.
func (e *Encoder) buildMovi() (movi, index []byte) {
	var m bytes.Buffer
	idx := make([]byte, 0, 16*len(e.chunks))
	le := binary.LittleEndian
	offset := uint32(4)
	for _, c := range e.chunks {
		writeChunk(&m, "00dc", c)

		var entry [16]byte
		copy(entry[0:], "00dc")
		le.PutUint32(entry[4:], aviifKeyframe)
		le.PutUint32(entry[8:], offset)
		le.PutUint32(entry[12:], uint32(len(c)))
		idx = append(idx, entry[:]...)

		offset += 8 + uint32(len(c)) + uint32(len(c)&1)
	}
	return m.Bytes(), idx
}

// writeChunk writes a RIFF chunk, padding odd-sized data to an even length.
func writeChunk(b *bytes.Buffer, id string, data []byte) {
	var hdr [8]byte
	copy(hdr[:4], id)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(data)))
	b.Write(hdr[:])
	b.Write(data)
	if len(data)&1 == 1 {
		b.WriteByte(0)
	}
}

func writeList(b *bytes.Buffer, kind string, data []byte) {
	var hdr [12]byte
	copy(hdr[:4], "LIST")
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(data)+4))
	copy(hdr[8:], kind)
	b.Write(hdr[:])
	b.Write(data)
	if len(data)&1 == 1 {
		b.WriteByte(0)
	}
}
