package grainy

// PixelFunc is called once per pixel. i is the offset of the pixel's red
// byte in buf.Pix and total is len(buf.Pix).
type PixelFunc func(buf *PixelBuffer, i, total int)

// TinkerPixels calls fn for every pixel of target. When shouldUpdate is
// true the changes made by fn are committed afterwards; otherwise the
// pass is read-only and fn must not modify the buffer.
func (e *Engine) TinkerPixels(fn PixelFunc, shouldUpdate bool, target Surface) error {
	s, buf, err := e.acquire(target)
	if err != nil {
		return err
	}
	d := buf.Density
	total := 4 * (buf.Width * d) * (buf.Height * d)

	for i := 0; i < total; i += 4 {
		fn(buf, i, total)
	}
	if shouldUpdate {
		e.commit(s)
	}
	return nil
}

// LoopPixels is the read-only form of TinkerPixels.
func (e *Engine) LoopPixels(fn PixelFunc, target Surface) error {
	return e.TinkerPixels(fn, false, target)
}
