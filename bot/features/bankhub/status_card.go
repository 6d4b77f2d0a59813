package bankhub

import (
	"bytes"
	"fmt"
	"time"

	"bankhub/domain/entities"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// StatusCardRenderer draws the hub status card image
type StatusCardRenderer struct {
	width   int
	height  int
	padding float64
	title   font.Face
	label   font.Face
}

// NewStatusCardRenderer parses the fonts once so every card is drawn with the same faces
func NewStatusCardRenderer() (*StatusCardRenderer, error) {
	title, err := loadFont(gobold.TTF, 20)
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}
	label, err := loadFont(goregular.TTF, 15)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}

	return &StatusCardRenderer{
		width:   420,
		height:  150,
		padding: 18,
		title:   title,
		label:   label,
	}, nil
}

// Render returns the PNG bytes of a card showing both toggle states
func (r *StatusCardRenderer) Render(settings entities.BankSettings) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("Status card rendered")
	}()

	dc := gg.NewContext(r.width, r.height)

	// vertical gradient background
	for y := 0; y < r.height; y++ {
		t := float64(y) / float64(r.height)
		dc.SetRGB(0.04+t*0.03, 0.06+t*0.05, 0.12+t*0.1)
		dc.DrawRectangle(0, float64(y), float64(r.width), 1)
		dc.Fill()
	}

	dc.SetFontFace(r.title)
	dc.SetRGB(1, 1, 1)
	dc.DrawString("BANK STATUS", r.padding, r.padding+20)

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(r.padding, r.padding+32, float64(r.width)-r.padding, r.padding+32)
	dc.Stroke()

	pillWidth := (float64(r.width) - 3*r.padding) / 2
	pillY := r.padding + 50
	for idx, toggle := range entities.AllToggles {
		x := r.padding + float64(idx)*(pillWidth+r.padding)
		r.drawPill(dc, x, pillY, pillWidth, 52, toggle.Label(), settings.IsEnabled(toggle))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *StatusCardRenderer) drawPill(dc *gg.Context, x, y, w, h float64, label string, enabled bool) {
	if enabled {
		dc.SetRGBA(0.34, 0.95, 0.53, 0.25)
	} else {
		dc.SetRGBA(0.93, 0.26, 0.27, 0.25)
	}
	dc.DrawRoundedRectangle(x, y, w, h, 10)
	dc.Fill()

	// status dot
	if enabled {
		dc.SetRGB(0.34, 0.95, 0.53)
	} else {
		dc.SetRGB(0.93, 0.26, 0.27)
	}
	dc.DrawCircle(x+18, y+h/2, 6)
	dc.Fill()

	state := "CLOSED"
	if enabled {
		state = "OPEN"
	}

	dc.SetFontFace(r.label)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(fmt.Sprintf("%s: %s", label, state), x+34, y+h/2, 0, 0.35)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
