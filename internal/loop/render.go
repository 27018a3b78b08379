package loop

// Renderer draws a finalized frame. Render runs on the tick goroutine, so it
// must not call Game.Destroy.
type Renderer interface {
	Render(f *Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f *Frame)

// Render calls fn(f).
func (fn RendererFunc) Render(f *Frame) {
	fn(f)
}

// Renderers fans a frame out to several renderers in order.
type Renderers []Renderer

// Render calls every renderer in order.
func (rs Renderers) Render(f *Frame) {
	for _, r := range rs {
		if r != nil {
			r.Render(f)
		}
	}
}
