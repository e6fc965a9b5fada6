package resources

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestAppIconIsCachedPNG(t *testing.T) {
	first := MustAppIcon()
	if second := MustAppIcon(); second != first {
		t.Fatal("icon not cached")
	}

	decoded, err := png.Decode(bytes.NewReader(first.Content()))
	if err != nil {
		t.Fatalf("decode icon: %v", err)
	}
	if got := decoded.Bounds().Dx(); got != iconSize {
		t.Fatalf("icon width = %d, want %d", got, iconSize)
	}
	if got := color.NRGBAModel.Convert(decoded.At(iconSize/2, iconSize/2)); got != accentColor {
		t.Fatalf("centre pixel = %v, want accent", got)
	}
	if got := color.NRGBAModel.Convert(decoded.At(0, 0)); got != backgroundColor {
		t.Fatalf("corner pixel = %v, want background", got)
	}
}

func TestTimerIconDiffers(t *testing.T) {
	if bytes.Equal(MustAppIcon().Content(), MustTimerIcon().Content()) {
		t.Fatal("timer icon identical to app icon")
	}
}
