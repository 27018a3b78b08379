package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/tomz197/forestshooter/internal/loop"
	"github.com/tomz197/forestshooter/internal/object"
)

// Raster draws frames into an in-memory image with the full forest look:
// gradients, translucent auras and the score text.
type Raster struct {
	dc    *gg.Context
	field object.Field
	scale float64
	scene *scenery
}

// NewRaster creates a raster renderer width pixels wide. The height follows the
// field's aspect ratio.
func NewRaster(field object.Field, width int) *Raster {
	width = max(width, 1)
	scale := float64(width) / field.Width
	height := max(int(math.Round(field.Height*scale)), 1)
	return &Raster{
		dc:    gg.NewContext(width, height),
		field: field,
		scale: scale,
	}
}

// Render implements loop.Renderer.
func (r *Raster) Render(f *loop.Frame) {
	r.Draw(f)
}

// Draw paints f and returns the image. The image is reused by the next Draw.
func (r *Raster) Draw(f *loop.Frame) image.Image {
	r.scene = sceneryFor(r.scene, f.Field, f.BackgroundSeed)

	r.drawBackground()
	for i := range f.Enemies {
		r.drawSpirit(&f.Enemies[i])
	}
	for i := range f.Projectiles {
		r.drawSeed(&f.Projectiles[i])
	}
	for i := range f.Particles {
		r.drawParticle(&f.Particles[i])
	}
	r.drawMushroom(&f.Player, capColor(f.BackgroundSeed))
	r.drawHUD(f)
	return r.dc.Image()
}

// SavePNG writes the last drawn image to path.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// Bounds returns the image size.
func (r *Raster) Bounds() image.Rectangle {
	return r.dc.Image().Bounds()
}

func (r *Raster) s(v float64) float64 {
	return v * r.scale
}

func (r *Raster) circle(x, y, radius float64) {
	r.dc.DrawCircle(r.s(x), r.s(y), r.s(radius))
}

func (r *Raster) fillCircle(x, y, radius float64, c color.Color) {
	r.circle(x, y, radius)
	r.dc.SetColor(c)
	r.dc.Fill()
}

// glow fills a circle with a radial gradient fading to transparent.
func (r *Raster) glow(x, y, radius float64, stops ...color.Color) {
	g := gg.NewRadialGradient(r.s(x), r.s(y), 0, r.s(x), r.s(y), r.s(radius))
	for i, c := range stops {
		g.AddColorStop(float64(i)/float64(len(stops)), c)
	}
	g.AddColorStop(1, color.NRGBA{})
	r.dc.SetFillStyle(g)
	r.circle(x, y, radius)
	r.dc.Fill()
}

func (r *Raster) drawBackground() {
	dc := r.dc
	w, h := r.s(r.field.Width), r.s(r.field.Height)
	sky := gg.NewLinearGradient(0, 0, 0, h)
	for _, st := range skyStops {
		sky.AddColorStop(st.at, nrgba(st.hex, 1))
	}
	dc.SetFillStyle(sky)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	for _, ff := range r.scene.fireflies {
		r.glow(ff.x, ff.y, ff.radius, nrgba(ff.color, ff.alpha))
	}
	for _, tr := range r.scene.trees {
		c := nrgba(treeColor, tr.alpha)
		top := r.field.Height - tr.height
		dc.SetColor(c)
		dc.DrawRectangle(r.s(tr.x), r.s(top), r.s(tr.width), r.s(tr.height))
		dc.Fill()
		r.fillCircle(tr.x+tr.width/2, top, tr.width*1.6, c)
		r.fillCircle(tr.x, top+10, tr.width, c)
		r.fillCircle(tr.x+tr.width, top+10, tr.width, c)
	}
}

func (r *Raster) drawSpirit(e *object.Enemy) {
	dc := r.dc
	rad := e.Radius
	body, aura, auraScale := spiritBody, spiritAura, 1.25
	if e.IsBoss() {
		body, aura, auraScale = bossBody, bossAura, 1.55
	}
	r.fillCircle(e.X, e.Y, rad*auraScale, nrgba(aura, 0.5))
	r.fillCircle(e.X, e.Y, rad, nrgba(body, 1))

	dc.SetColor(nrgba(blush, 0.5))
	for _, side := range []float64{-1, 1} {
		dc.DrawEllipse(r.s(e.X+side*rad*0.4), r.s(e.Y+rad*0.3), r.s(rad*0.17), r.s(rad*0.08))
		dc.Fill()
	}
	dc.SetColor(nrgba(spiritEye, 0.92))
	for _, side := range []float64{-1, 1} {
		r.circle(e.X+side*rad*0.33, e.Y-rad*0.22, rad*0.11)
		dc.Fill()
	}
	dc.SetColor(nrgba(spiritMouth, 1))
	dc.SetLineWidth(max(1, r.s(rad*0.07)))
	dc.DrawArc(r.s(e.X), r.s(e.Y+rad*0.13), r.s(rad*0.19), 0.18*math.Pi, 0.82*math.Pi)
	dc.Stroke()

	for i, side := range []float64{-1, 1} {
		leaf := func(x, y float64) (float64, float64) {
			rx, ry := rotate(side*x, y, side*0.3)
			return r.s(e.X + rx*rad), r.s(e.Y + ry*rad)
		}
		dc.MoveTo(leaf(0.7, -0.7))
		cx, cy := leaf(1.1, -1.1)
		ex, ey := leaf(0.3, -1.25)
		dc.QuadraticTo(cx, cy, ex, ey)
		cx, cy = leaf(0.6, -1.05)
		ex, ey = leaf(0.7, -0.7)
		dc.QuadraticTo(cx, cy, ex, ey)
		dc.ClosePath()
		dc.SetColor(nrgba(variantColor(ForestGreens, e.Variant, i), 0.82))
		dc.Fill()
	}

	for i := range flowerCount(e) {
		fx, fy := flowerOffset(e, i)
		alpha := 0.78 + float64((e.Variant+i)%4)*0.05
		r.fillCircle(e.X+fx, e.Y+fy, rad*0.18, nrgba(variantColor(ForestFlowers, e.Variant, i), alpha))
	}

	if e.IsBoss() {
		r.fillCircle(e.X+rad*0.8, e.Y+rad*0.6, rad*0.24, nrgba(moonGlow, 0.8))
	}
}

func (r *Raster) drawSeed(p *object.Projectile) {
	g := gg.NewRadialGradient(r.s(p.X), r.s(p.Y), 0, r.s(p.X), r.s(p.Y), r.s(p.Radius*2.4))
	g.AddColorStop(0, nrgba(seedCore, 1))
	g.AddColorStop(0.55, nrgba(seedGlow, 1))
	g.AddColorStop(1, color.NRGBA{})
	r.dc.SetFillStyle(g)
	r.circle(p.X, p.Y, p.Radius*2.4)
	r.dc.Fill()
}

func (r *Raster) drawParticle(p *object.Particle) {
	r.glow(p.X, p.Y, max(0.8, p.Radius*1.7), nrgba(p.Color, p.Alpha))
}

func (r *Raster) drawMushroom(p *object.Player, capHex string) {
	dc := r.dc
	rad := p.Radius

	dc.DrawEllipticalArc(r.s(p.X), r.s(p.Y-rad*0.35), r.s(rad*1.04), r.s(rad*0.64), math.Pi, 2*math.Pi)
	dc.ClosePath()
	dc.SetColor(nrgba(capHex, 1))
	dc.Fill()
	for _, sp := range capSpots {
		r.fillCircle(p.X+sp[0]*rad, p.Y+sp[1]*rad, rad*0.17, nrgba(stemColor, 0.93))
	}

	dc.DrawEllipse(r.s(p.X), r.s(p.Y+rad*0.28), r.s(rad*0.55), r.s(rad*0.74))
	dc.SetColor(nrgba(stemColor, 0.95))
	dc.Fill()

	dc.SetColor(nrgba(mushroomEye, 0.92))
	for _, side := range []float64{-1, 1} {
		r.circle(p.X+side*rad*0.22, p.Y+rad*0.1, rad*0.1)
		dc.Fill()
	}
	dc.SetColor(nrgba(mushroomMouth, 1))
	dc.SetLineWidth(max(1, r.s(rad*0.08)))
	dc.DrawArc(r.s(p.X), r.s(p.Y+rad*0.22), r.s(rad*0.18), 0.18*math.Pi, 0.82*math.Pi)
	dc.Stroke()
}

func (r *Raster) drawHUD(f *loop.Frame) {
	dc := r.dc
	text := fmt.Sprintf("Score: %d", f.Score)
	dc.SetColor(nrgba(scoreShadow, 0.6))
	dc.DrawString(text, r.s(18)+1, r.s(34)+1)
	dc.SetColor(nrgba(scoreColor, 1))
	dc.DrawString(text, r.s(18), r.s(34))
	if f.BossDefeated {
		dc.SetColor(nrgba(savedColor, 1))
		dc.DrawStringAnchored("Forest Guardian Saved!", r.s(r.field.Width-18), r.s(34), 1, 0)
	}
}

// rotate turns (x, y) by angle radians around the origin.
func rotate(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}
