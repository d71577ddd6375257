package view

import (
	"image"

	"github.com/tracklens/tracklens/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// MonitorStrip renders one preview pane per monitor of the current slot,
// side by side in monitor order. Frames whose image could not be resolved
// show a placeholder pane.
type MonitorStrip interface {
	// UpdateFrames replaces the strip content. A nil entry renders as a
	// placeholder ("unavailable"); an empty slice resets the strip.
	UpdateFrames(imgs []image.Image)
	Reset()
}

type monitorStrip struct {
	row        int
	maxW, maxH int
	panes      []*LabelWidget
	photos     []*Img // current Tk photo per pane, disposed before replacement
}

// NewMonitorStrip creates the strip at the given grid row. maxW/maxH bound
// the combined preview area; each pane gets an equal share of the width.
func NewMonitorStrip(row, maxW, maxH int) MonitorStrip {
	return &monitorStrip{row: row, maxW: maxW, maxH: maxH}
}

func (v *monitorStrip) UpdateFrames(imgs []image.Image) {
	if v == nil {
		return
	}
	if len(imgs) == 0 {
		v.Reset()
		return
	}
	v.ensurePanes(len(imgs))
	paneW := v.maxW / len(imgs)
	if paneW < 50 {
		paneW = 50
	}
	for i, img := range imgs {
		if img == nil {
			img = images.Placeholder(paneW, v.maxH)
		}
		v.setPane(i, images.ScaleToFit(img, paneW, v.maxH))
	}
	// Blank out panes left over from a slot with more monitors.
	for i := len(imgs); i < len(v.panes); i++ {
		v.setPane(i, images.Placeholder(1, 1))
	}
}

func (v *monitorStrip) Reset() {
	if v == nil {
		return
	}
	for i := range v.panes {
		v.setPane(i, images.Placeholder(v.maxW, v.maxH))
	}
}

// ensurePanes grows the strip to hold at least n panes.
func (v *monitorStrip) ensurePanes(n int) {
	for len(v.panes) < n {
		pngBytes := images.EncodePNG(images.Placeholder(200, 120))
		photo := NewPhoto(Data(pngBytes))
		pane := Label(Image(photo), Borderwidth(1), Relief("sunken"))
		Grid(pane, Row(v.row), Column(len(v.panes)), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
		v.panes = append(v.panes, pane)
		v.photos = append(v.photos, photo)
	}
}

// setPane swaps a pane's photo, disposing the previous one so obsolete pixel
// buffers are not retained.
func (v *monitorStrip) setPane(i int, img image.Image) {
	if i < 0 || i >= len(v.panes) || v.panes[i] == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.photos[i] != nil {
		v.photos[i].Delete()
	}
	photo := NewPhoto(Data(pngBytes))
	v.photos[i] = photo
	v.panes[i].Configure(Image(photo))
}
