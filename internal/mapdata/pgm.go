package mapdata

import (
	"bufio"
	"fmt"
	"io"
)

// decodePGM reads a P5 (binary) or P2 (ASCII) PGM image. ROS map_saver
// writes P5 with maxval 255, but hand-edited P2 maps exist too.
func decodePGM(r io.Reader) (*IntensityGrid, error) {
	br := bufio.NewReader(r)

	magic, err := pgmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P5" && magic != "P2" {
		return nil, fmt.Errorf("pgm: unsupported magic %q", magic)
	}

	var width, height, maxval int
	for _, dst := range []*int{&width, &height, &maxval} {
		tok, err := pgmToken(br)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Sscanf(tok, "%d", dst); err != nil {
			return nil, fmt.Errorf("pgm: bad header token %q", tok)
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pgm: bad dimensions %dx%d", width, height)
	}
	if maxval <= 0 || maxval > 65535 {
		return nil, fmt.Errorf("pgm: bad maxval %d", maxval)
	}

	g := &IntensityGrid{Rows: height, Cols: width, Pix: make([]float64, width*height)}
	scale := 1.0 / float64(maxval)

	if magic == "P2" {
		for i := range g.Pix {
			tok, err := pgmToken(br)
			if err != nil {
				return nil, fmt.Errorf("pgm: truncated ASCII data: %w", err)
			}
			var v int
			if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
				return nil, fmt.Errorf("pgm: bad sample %q", tok)
			}
			g.Pix[i] = float64(v) * scale
		}
		return g, nil
	}

	// P5: raw samples, 1 byte each up to maxval 255, 2 bytes big-endian above.
	bytesPer := 1
	if maxval > 255 {
		bytesPer = 2
	}
	buf := make([]byte, width*height*bytesPer)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, fmt.Errorf("pgm: truncated raster data: %w", err)
	}
	for i := range g.Pix {
		if bytesPer == 1 {
			g.Pix[i] = float64(buf[i]) * scale
		} else {
			g.Pix[i] = float64(uint16(buf[2*i])<<8|uint16(buf[2*i+1])) * scale
		}
	}
	return g, nil
}

// pgmToken returns the next whitespace-delimited token, skipping comments.
func pgmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if len(tok) > 0 && err == io.EOF {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case b == '#':
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}
