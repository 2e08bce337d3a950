package gooey

import (
	"bytes"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/goregular"
)

// MenuItem is one entry of the overlay menu.
type MenuItem struct {
	Icon  string
	Label string
}

const (
	menuFadeDuration   = 0.3
	menuOpenDelay      = 0.1
	menuOpenStagger    = 0.08
	menuCloseStagger   = 0.05
	menuSlideDistance  = 24.0
	menuSlideFrequency = 8.0
	menuSlideDamping   = 0.8
	menuFontSize       = 16
	menuLabelGap       = 12.0
	menuMinAlpha       = 1.0 / 255
)

// menuLabel is the animated state of one entry. alpha fades with a gween tween
// after delay; slide is a horizontal offset in pixels driven by a spring.
type menuLabel struct {
	item     MenuItem
	alpha    float64
	target   float64
	delay    float64
	fade     *gween.Tween
	slide    float64
	slideVel float64
	slideTo  float64
}

// Menu is the text overlay that follows the blobs. Each label fades and slides
// in after its own delay, so the entries appear in order when opening and in
// reverse order when closing.
//
// There is no global animation manager; the owning Effect calls Update once per
// tick.
type Menu struct {
	labels []menuLabel
	active bool

	spring   harmonica.Spring
	springDT float64

	face     *text.GoTextFace
	faceErr  error
	Color    Color
	FontSize float64
}

// NewMenu creates a closed menu with the given entries.
func NewMenu(items []MenuItem) *Menu {
	m := &Menu{
		labels:   make([]menuLabel, len(items)),
		Color:    ColorWhite,
		FontSize: menuFontSize,
	}
	for i, it := range items {
		m.labels[i] = menuLabel{item: it, slide: menuSlideDistance, slideTo: menuSlideDistance}
	}
	return m
}

// Len returns the number of entries.
func (m *Menu) Len() int { return len(m.labels) }

// Item returns entry i.
func (m *Menu) Item(i int) MenuItem { return m.labels[i].item }

// Alpha returns the current opacity of entry i in [0, 1].
func (m *Menu) Alpha(i int) float64 { return m.labels[i].alpha }

// Offset returns the current horizontal slide of entry i in pixels. Zero is
// the resting open position.
func (m *Menu) Offset(i int) float64 { return m.labels[i].slide }

// fadeDelay is the time entry i waits after a transition before it starts
// fading.
func (m *Menu) fadeDelay(i int, opening bool) float64 {
	if opening {
		return float64(i)*menuOpenStagger + menuOpenDelay
	}
	return float64(len(m.labels)-1-i) * menuCloseStagger
}

// Update advances the overlay by dt seconds. A change of active restarts every
// entry's fade from its current opacity.
func (m *Menu) Update(active bool, dt float64) {
	if dt < 0 {
		dt = 0
	}
	if active != m.active {
		m.active = active
		target := 0.0
		if active {
			target = 1
		}
		for i := range m.labels {
			l := &m.labels[i]
			l.target = target
			l.delay = m.fadeDelay(i, active)
			l.fade = gween.New(float32(l.alpha), float32(target), menuFadeDuration, ease.OutQuad)
		}
	}
	if dt == 0 {
		return
	}
	if dt != m.springDT {
		m.spring = harmonica.NewSpring(dt, menuSlideFrequency, menuSlideDamping)
		m.springDT = dt
	}

	for i := range m.labels {
		l := &m.labels[i]
		if l.fade != nil {
			step := dt
			if l.delay > 0 {
				l.delay -= dt
				step = -l.delay
			}
			if step > 0 {
				l.delay = 0
				l.slideTo = (1 - l.target) * menuSlideDistance
				v, done := l.fade.Update(float32(step))
				l.alpha = clamp01(float64(v))
				if done {
					l.alpha = l.target
					l.fade = nil
				}
			}
		}
		l.slide, l.slideVel = m.spring.Update(l.slide, l.slideVel, l.slideTo)
	}
}

// Settled reports whether every fade has finished.
func (m *Menu) Settled() bool {
	for i := range m.labels {
		if m.labels[i].fade != nil {
			return false
		}
	}
	return true
}

func (m *Menu) ensureFace() *text.GoTextFace {
	if m.face != nil || m.faceErr != nil {
		return m.face
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		m.faceErr = err
		Logger().Error("gooey: menu font", "err", err)
		return nil
	}
	m.face = &text.GoTextFace{Source: source, Size: m.FontSize}
	return m.face
}

// SetFace replaces the default Go Regular face.
func (m *Menu) SetFace(face *text.GoTextFace) {
	m.face = face
	m.faceErr = nil
}

// menuAnchor is the screen position of an entry's child blob when open, and
// that blob's radius in pixels.
type menuAnchor struct {
	center Vec2
	radius float64
}

// Draw renders every visible entry. anchor returns the open blob position of
// entry i; the icon is centered on it and the label sits to its left.
func (m *Menu) Draw(screen *ebiten.Image, anchor func(i int) menuAnchor) {
	var face *text.GoTextFace
	for i := range m.labels {
		l := &m.labels[i]
		if l.alpha < menuMinAlpha {
			continue
		}
		if face == nil {
			if face = m.ensureFace(); face == nil {
				return
			}
		}
		a := anchor(i)
		c := m.Color
		alpha := float32(l.alpha * c.A)

		op := &text.DrawOptions{}
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.Scale(float32(c.R)*alpha, float32(c.G)*alpha, float32(c.B)*alpha, alpha)

		if l.item.Icon != "" {
			op.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(a.center.X, a.center.Y)
			text.Draw(screen, l.item.Icon, face, op)
		}

		op.GeoM.Reset()
		op.PrimaryAlign = text.AlignEnd
		op.GeoM.Translate(a.center.X-a.radius-menuLabelGap+l.slide, a.center.Y)
		text.Draw(screen, l.item.Label, face, op)
	}
}
