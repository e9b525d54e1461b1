package tray

import "encoding/binary"

const (
	iconSize    = 16
	iconHeader  = 6 + 16
	dibHeader   = 40
	pixelBytes  = iconSize * iconSize * 4
	maskBytes   = iconSize * 4
	iconImgSize = dibHeader + pixelBytes + maskBytes
)

// Icon renders a 16x16 ICO: a filled disc, green when mouse simulation is
// active and grey otherwise.
func Icon(active bool) []byte {
	b, g, r := byte(0x90), byte(0x90), byte(0x90)
	if active {
		b, g, r = 0x40, 0xc0, 0x30
	}

	ico := make([]byte, iconHeader+iconImgSize)

	// ICONDIR + one ICONDIRENTRY
	binary.LittleEndian.PutUint16(ico[2:], 1)
	binary.LittleEndian.PutUint16(ico[4:], 1)
	ico[6] = iconSize
	ico[7] = iconSize
	binary.LittleEndian.PutUint16(ico[10:], 1)
	binary.LittleEndian.PutUint16(ico[12:], 32)
	binary.LittleEndian.PutUint32(ico[14:], iconImgSize)
	binary.LittleEndian.PutUint32(ico[18:], iconHeader)

	// BITMAPINFOHEADER, height doubled for the AND mask
	dib := ico[iconHeader:]
	binary.LittleEndian.PutUint32(dib[0:], dibHeader)
	binary.LittleEndian.PutUint32(dib[4:], iconSize)
	binary.LittleEndian.PutUint32(dib[8:], iconSize*2)
	binary.LittleEndian.PutUint16(dib[12:], 1)
	binary.LittleEndian.PutUint16(dib[14:], 32)
	binary.LittleEndian.PutUint32(dib[20:], pixelBytes)

	// BGRA rows, bottom-up; the mask stays zero and alpha decides.
	px := dib[dibHeader:]
	const c, rad = 7.5, 6.5
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			if dx*dx+dy*dy > rad*rad {
				continue
			}
			i := (y*iconSize + x) * 4
			px[i], px[i+1], px[i+2], px[i+3] = b, g, r, 0xff
		}
	}
	return ico
}
