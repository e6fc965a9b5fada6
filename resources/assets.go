package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

const iconSize = 64

var (
	backgroundColor = color.NRGBA{R: 31, G: 106, B: 165, A: 255}
	accentColor     = color.NRGBA{R: 0, G: 255, B: 153, A: 255}
	timerColor      = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
)

var iconCache sync.Map

// AppIcon returns the application and idle tray icon.
func AppIcon() (fyne.Resource, error) {
	return loadIcon("fitslots.png", backgroundColor, accentColor)
}

// TimerIcon returns the tray icon shown while a countdown is armed.
func TimerIcon() (fyne.Resource, error) {
	return loadIcon("fitslots-timer.png", backgroundColor, timerColor)
}

// MustAppIcon returns the application icon or panics on error.
func MustAppIcon() fyne.Resource {
	resource, err := AppIcon()
	if err != nil {
		panic(err)
	}
	return resource
}

// MustTimerIcon returns the timer icon or panics on error.
func MustTimerIcon() fyne.Resource {
	resource, err := TimerIcon()
	if err != nil {
		panic(err)
	}
	return resource
}

func loadIcon(name string, background, accent color.NRGBA) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(name); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := renderIcon(iconSize, background, accent)
	if err != nil {
		return nil, fmt.Errorf("render icon %s: %w", name, err)
	}

	resource := fyne.NewStaticResource(name, data)
	iconCache.Store(name, resource)
	return resource, nil
}

// renderIcon draws a filled square with a centred disc.
func renderIcon(size int, background, accent color.NRGBA) ([]byte, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	centre := float64(size) / 2
	radius := float64(size) * 0.35
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - centre
			dy := float64(y) + 0.5 - centre
			if dx*dx+dy*dy <= radius*radius {
				canvas.SetNRGBA(x, y, accent)
			} else {
				canvas.SetNRGBA(x, y, background)
			}
		}
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, canvas); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
