package askcii

import (
	"context"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

/*
PlayGIF draws each frame of giff as ASCII art on w (usually os.Stdout), moving
the cursor back to the top of the previous frame before drawing the next one.
Delays and disposal methods are respected. The animation loops as the GIF
requests (forever when LoopCount is 0) until ctx is done.
*/
func PlayGIF(ctx context.Context, w io.Writer, giff *gif.GIF, r *Rasterizer, width, height int) error {
	if len(giff.Image) == 0 {
		return nil
	}
	term := &Xterm{Writer: w}
	term.ShowCursor(false)
	defer term.ShowCursor(true)

	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if bounds.Empty() {
		bounds = giff.Image[0].Bounds()
	}
	p := player{w: w, term: term, r: r, width: width, height: height}

	for c := 0; giff.LoopCount == 0 || c < plays(giff.LoopCount); c++ {
		// Always draw the first frame from scratch
		screen := image.NewRGBA(bounds)
		for i, frame := range giff.Image {
			var delay time.Duration
			if i < len(giff.Delay) {
				delay = time.Duration(giff.Delay[i]) * time.Second / 100
			}
			var disposal byte
			if i < len(giff.Disposal) {
				disposal = giff.Disposal[i]
			}

			switch disposal {
			// Dispose previous essentially means draw then undo
			case gif.DisposalPrevious:
				previous := clone(screen)
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := p.flush(screen); err != nil {
					return err
				}
				screen = previous
				if err := wait(ctx, delay); err != nil {
					return err
				}
			// Dispose background clears the frame's area once it has been shown
			case gif.DisposalBackground:
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := p.flush(screen); err != nil {
					return err
				}
				if err := wait(ctx, delay); err != nil {
					return err
				}
				draw.Draw(screen, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
			// Dispose none or undefined means we just draw what we got over top
			default:
				draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
				if err := p.flush(screen); err != nil {
					return err
				}
				if err := wait(ctx, delay); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// plays converts a GIF loop count into a number of passes: -1 means once,
// n means the animation repeats n times after the first pass.
func plays(loopCount int) int {
	if loopCount < 0 {
		return 1
	}
	return loopCount + 1
}

type player struct {
	w             io.Writer
	term          Terminal
	r             *Rasterizer
	width, height int
	rows          int // Lines written by the previous flush
}

func (p *player) flush(screen image.Image) error {
	art, err := p.r.Render(screen, p.width, p.height)
	if err != nil {
		return err
	}
	if p.rows > 0 {
		p.term.ResetCursor(p.rows)
	}
	if _, err := io.WriteString(p.w, art.String()); err != nil {
		return err
	}
	p.rows = len(art)
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
