package protocol

import (
	"encoding/binary"
	"errors"
	"math"
)

// OpenTrackFrameSize is the size of an OpenTrack "UDP over network" datagram:
// six little-endian float64 values.
//
//	X, Y, Z        (cm)       offset 0, 8, 16
//	Yaw, Pitch, Roll (degrees) offset 24, 32, 40
const OpenTrackFrameSize = 48

// ErrShortFrame is returned for datagrams smaller than OpenTrackFrameSize.
var ErrShortFrame = errors.New("opentrack: frame too short")

// OpenTrackFrame is one head pose sample.
type OpenTrackFrame struct {
	X, Y, Z          float64
	Yaw, Pitch, Roll float64
}

// EncodeOpenTrack serializes a frame to wire format.
func EncodeOpenTrack(f OpenTrackFrame) []byte {
	buf := make([]byte, OpenTrackFrameSize)
	for i, v := range [...]float64{f.X, f.Y, f.Z, f.Yaw, f.Pitch, f.Roll} {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// DecodeOpenTrack parses a datagram. Trailing bytes are ignored.
func DecodeOpenTrack(data []byte) (OpenTrackFrame, error) {
	if len(data) < OpenTrackFrameSize {
		return OpenTrackFrame{}, ErrShortFrame
	}

	var v [6]float64
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return OpenTrackFrame{
		X: v[0], Y: v[1], Z: v[2],
		Yaw: v[3], Pitch: v[4], Roll: v[5],
	}, nil
}
