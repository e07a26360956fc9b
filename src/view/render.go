package view

import (
	"bytes"

	"github.com/logrusorgru/aurora"

	"lifeterm/src/universe"
)

var cropMessage = aurora.Red("The field size is larger than the viewing area").BgBlack().String()

//RenderField draws the field into the canvas maxW x maxH, one char per cell
//the cells outside the canvas are discarded, the last line reports the cropping
func RenderField(f universe.Field, maxW int, maxH int, liveFiller string, deadFiller string) string {
	var b bytes.Buffer
	if maxW <= 0 || maxH <= 0 {
		return ""
	}
	crop := f.Width() > maxW || f.Height() > maxH
	for y := 0; y < f.Height(); y++ {
		//discard the data outside the view area
		if y >= maxH {
			break
		}
		//line feed char
		if y != 0 {
			b.WriteByte(10)
		}
		if crop && y == maxH-1 {
			b.WriteString(cropMessage)
			break
		}
		for x := 0; x < f.Width(); x++ {
			if x >= maxW {
				break
			}
			if f.Cell(x, y) {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}
