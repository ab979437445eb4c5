package inference

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// pngHeader is a PNG signature plus an IHDR declaring w x h RGBA and an
// empty IDAT. It carries no pixel data.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA
	writePNGChunk(&buf, "IHDR", ihdr)
	writePNGChunk(&buf, "IDAT", nil)
	return buf.Bytes()
}

func writePNGChunk(buf *bytes.Buffer, typ string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	buf.Write(n[:])
	body := append([]byte(typ), data...)
	buf.Write(body)
	binary.BigEndian.PutUint32(n[:], crc32.ChecksumIEEE(body))
	buf.Write(n[:])
}

// fakeSession serves a fixed head output and records the last input.
type fakeSession struct {
	in        []float32
	out       []float32
	runErr    error
	runs      int
	destroyed bool
}

func (s *fakeSession) Input() []float32  { return s.in }
func (s *fakeSession) Output() []float32 { return s.out }
func (s *fakeSession) Run() error        { s.runs++; return s.runErr }
func (s *fakeSession) Destroy()          { s.destroyed = true }

// headOutput builds a [4+classes, anchors] tensor with one box per entry of boxes.
func headOutput(size, classes int, boxes ...fakeBox) []float32 {
	anchors := anchorCount(size)
	out := make([]float32, (4+classes)*anchors)
	for i, b := range boxes {
		out[i] = b.cx
		out[anchors+i] = b.cy
		out[2*anchors+i] = b.w
		out[3*anchors+i] = b.h
		out[(4+b.class)*anchors+i] = b.score
	}
	return out
}

type fakeBox struct {
	cx, cy, w, h float32
	class        int
	score        float32
}
