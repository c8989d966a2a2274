package panel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/example/bitpop/internal/logging"
)

const iconSize = 32

var (
	iconOnce sync.Once
	iconData []byte
)

// trayIcon returns the PNG shown in the notification area.
func trayIcon() []byte {
	iconOnce.Do(func() {
		data, err := renderIcon(iconSize)
		if err != nil {
			logging.Debugf("failed to render tray icon: %v", err)
			return
		}
		iconData = data
	})
	return cloneIcon(iconData)
}

// renderIcon draws a filled disc with a transparent background.
func renderIcon(size int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fill := color.NRGBA{R: 0x3d, G: 0x8b, B: 0xfd, A: 0xff}

	center := float64(size-1) / 2
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			if dx*dx+dy*dy <= radius*radius {
				img.SetNRGBA(x, y, fill)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cloneIcon(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp
}
