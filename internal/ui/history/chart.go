package history

import (
	"deepwork/internal/stats"

	"fyne.io/fyne/v2"
)

const (
	barWidth    = float32(36)
	barGap      = float32(12)
	labelHeight = float32(18)
)

// chartLayout places (bar, value, label) triples left to right, bars scaled to the tallest.
type chartLayout struct {
	bars    []stats.Bar
	highest int
}

func (layout *chartLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for index := range layout.bars {
		if index*3+2 >= len(objects) {
			return
		}
		column, value, label := objects[index*3], objects[index*3+1], objects[index*3+2]

		position, barSize := barGeometry(index, layout.bars[index].Minutes, layout.highest, size.Height)
		column.Move(position)
		column.Resize(barSize)

		value.Resize(fyne.NewSize(barWidth+barGap, labelHeight))
		value.Move(fyne.NewPos(position.X-barGap/2, position.Y-labelHeight))

		label.Resize(fyne.NewSize(barWidth+barGap, labelHeight))
		label.Move(fyne.NewPos(position.X-barGap/2, size.Height-labelHeight))
	}
}

func (layout *chartLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	count := float32(len(layout.bars))
	return fyne.NewSize(count*(barWidth+barGap)+barGap, labelHeight*4)
}

// barGeometry returns the top-left corner and size of a bar in a chart of the given height.
// The bottom row is reserved for the phase label and the top row for the minutes.
func barGeometry(index, minutes, highest int, height float32) (fyne.Position, fyne.Size) {
	x := barGap + float32(index)*(barWidth+barGap)
	usable := height - labelHeight*2
	if usable < 0 || highest <= 0 || minutes <= 0 {
		return fyne.NewPos(x, height-labelHeight), fyne.NewSize(barWidth, 0)
	}

	barHeight := usable * float32(minutes) / float32(highest)
	return fyne.NewPos(x, height-labelHeight-barHeight), fyne.NewSize(barWidth, barHeight)
}
