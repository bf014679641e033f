package capture

import (
	"errors"
	"image"
	"testing"
)

func stubProviders(t *testing.T, portal func(Options) (*image.RGBA, error), x11 func() (*image.RGBA, error)) {
	t.Helper()
	prevPortal, prevX11 := portalProvider, x11Provider
	portalProvider, x11Provider = portal, x11
	t.Cleanup(func() {
		portalProvider, x11Provider = prevPortal, prevX11
	})
}

func TestScreenPrefersPortal(t *testing.T) {
	x11Called := false
	stubProviders(t,
		func(Options) (*image.RGBA, error) { return sample(8, 4), nil },
		func() (*image.RGBA, error) { x11Called = true; return nil, errors.New("unused") },
	)
	img, err := Screen(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 || x11Called {
		t.Errorf("bounds=%v x11Called=%v", img.Bounds(), x11Called)
	}
}

func TestScreenFallsBackToX11(t *testing.T) {
	stubProviders(t,
		func(Options) (*image.RGBA, error) { return nil, errors.New("no portal") },
		func() (*image.RGBA, error) { return sample(6, 6), nil },
	)
	img, err := Screen(Options{Region: image.Rect(1, 1, 3, 4)})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestScreenBothFail(t *testing.T) {
	stubProviders(t,
		func(Options) (*image.RGBA, error) { return nil, errors.New("no portal") },
		func() (*image.RGBA, error) { return nil, errors.New("no display") },
	)
	if _, err := Screen(Options{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestScreenEmpty(t *testing.T) {
	stubProviders(t,
		func(Options) (*image.RGBA, error) { return image.NewRGBA(image.Rectangle{}), nil },
		nil,
	)
	if _, err := Screen(Options{}); !errors.Is(err, ErrNoImage) {
		t.Errorf("err = %v", err)
	}
}
