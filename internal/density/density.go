// Package density rewrites the stored print resolution of encoded images
// without touching pixel data: the JFIF APP0 density fields for JPEG and
// the pHYs chunk for PNG.
package density

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/AnyUserName/pixform-cli/internal/geometry"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Set returns a copy of data with the output density set to dpi dots per
// inch. GIF and WebP have no portable density slot and are rejected.
func Set(data []byte, format string, dpi geometry.Size) ([]byte, error) {
	if dpi.W <= 0 || dpi.H <= 0 || dpi.W > 0xffff || dpi.H > 0xffff {
		return nil, fmt.Errorf("density %s out of range: %w", dpi, geometry.ErrInvalidDimension)
	}
	switch format {
	case "jpeg", "jpg":
		return setJPEG(data, dpi)
	case "png":
		return setPNG(data, dpi)
	default:
		return nil, fmt.Errorf("format %q carries no density metadata", format)
	}
}

func setJPEG(data []byte, dpi geometry.Size) ([]byte, error) {
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		return nil, fmt.Errorf("not a jpeg stream")
	}

	// A JFIF APP0 sits directly after SOI when present; patch it in place.
	if len(data) >= 18 && data[2] == 0xff && data[3] == 0xe0 &&
		bytes.Equal(data[6:11], []byte("JFIF\x00")) {
		out := append([]byte(nil), data...)
		out[13] = 0x01 // density unit: dots per inch
		binary.BigEndian.PutUint16(out[14:16], uint16(dpi.W))
		binary.BigEndian.PutUint16(out[16:18], uint16(dpi.H))
		return out, nil
	}

	// No JFIF header (Go's jpeg encoder writes none); insert one.
	seg := make([]byte, 18)
	seg[0], seg[1] = 0xff, 0xe0
	binary.BigEndian.PutUint16(seg[2:4], 16)
	copy(seg[4:9], "JFIF\x00")
	seg[9], seg[10] = 0x01, 0x01 // JFIF version 1.01
	seg[11] = 0x01               // dots per inch
	binary.BigEndian.PutUint16(seg[12:14], uint16(dpi.W))
	binary.BigEndian.PutUint16(seg[14:16], uint16(dpi.H))
	// seg[16:18] stays zero: no thumbnail.

	out := make([]byte, 0, len(data)+len(seg))
	out = append(out, data[:2]...)
	out = append(out, seg...)
	out = append(out, data[2:]...)
	return out, nil
}

func setPNG(data []byte, dpi geometry.Size) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("not a png stream")
	}
	phys := physChunk(dpi)

	var out bytes.Buffer
	out.Grow(len(data) + len(phys))
	out.Write(pngSignature)

	inserted := false
	pos := len(pngSignature)
	for pos+12 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		end := pos + 12 + length
		if end > len(data) {
			return nil, fmt.Errorf("truncated png chunk %q", typ)
		}
		switch typ {
		case "pHYs":
			out.Write(phys)
			inserted = true
		case "IDAT":
			// pHYs must precede the image data.
			if !inserted {
				out.Write(phys)
				inserted = true
			}
			out.Write(data[pos:end])
		default:
			out.Write(data[pos:end])
		}
		pos = end
	}
	if pos != len(data) {
		return nil, fmt.Errorf("trailing garbage after png chunks")
	}
	if !inserted {
		return nil, fmt.Errorf("png stream has no IDAT chunk")
	}
	return out.Bytes(), nil
}

// physChunk builds a complete pHYs chunk, densities converted from dots
// per inch to pixels per metre.
func physChunk(dpi geometry.Size) []byte {
	chunk := make([]byte, 21)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], dpiToPPM(dpi.W))
	binary.BigEndian.PutUint32(chunk[12:16], dpiToPPM(dpi.H))
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}

func dpiToPPM(dpi int) uint32 {
	return uint32(math.Round(float64(dpi) * 1000 / 25.4))
}

func ppmToDPI(ppm uint32) int {
	return int(math.Round(float64(ppm) * 25.4 / 1000))
}

// Read reports the stored density of an encoded image in dots per inch.
// ok is false when the stream carries no density (or only an aspect
// ratio without absolute units).
func Read(data []byte, format string) (dpi geometry.Size, ok bool) {
	switch format {
	case "jpeg", "jpg":
		return readJPEG(data)
	case "png":
		return readPNG(data)
	default:
		return geometry.Size{}, false
	}
}

func readJPEG(data []byte) (geometry.Size, bool) {
	if len(data) < 18 || data[0] != 0xff || data[1] != 0xd8 {
		return geometry.Size{}, false
	}
	if data[2] != 0xff || data[3] != 0xe0 || !bytes.Equal(data[6:11], []byte("JFIF\x00")) {
		return geometry.Size{}, false
	}
	x := int(binary.BigEndian.Uint16(data[14:16]))
	y := int(binary.BigEndian.Uint16(data[16:18]))
	switch data[13] {
	case 0x01: // dots per inch
		return geometry.Size{W: x, H: y}, true
	case 0x02: // dots per cm
		return geometry.Size{
			W: int(math.Round(float64(x) * 2.54)),
			H: int(math.Round(float64(y) * 2.54)),
		}, true
	default:
		return geometry.Size{}, false
	}
}

func readPNG(data []byte) (geometry.Size, bool) {
	if !bytes.HasPrefix(data, pngSignature) {
		return geometry.Size{}, false
	}
	pos := len(pngSignature)
	for pos+12 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		end := pos + 12 + length
		if end > len(data) {
			return geometry.Size{}, false
		}
		if typ == "pHYs" && length == 9 && data[pos+16] == 1 {
			return geometry.Size{
				W: ppmToDPI(binary.BigEndian.Uint32(data[pos+8 : pos+12])),
				H: ppmToDPI(binary.BigEndian.Uint32(data[pos+12 : pos+16])),
			}, true
		}
		pos = end
	}
	return geometry.Size{}, false
}
