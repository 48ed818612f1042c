package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game"
	"gridsnake/game/types"
)

const (
	dHoriz  = '-'
	dVert   = '|'
	dCorner = '+'
	dBody   = '#'
	dFood   = '*'

	// Each board cell is two terminal columns wide to keep it roughly square
	cellWidth = 2
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle   = tcell.StyleDefault
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var headRunes = map[types.Direction]rune{
	types.Up:    '^',
	types.Right: '>',
	types.Down:  'v',
	types.Left:  '<',
}

// Renderer draws snapshots on a tcell screen. The board sits inside a
// border at the top-left corner, with the status below it.
type Renderer struct {
	screen    tcell.Screen
	autopilot bool
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// SetAutopilot toggles the autopilot marker in the status line
func (r *Renderer) SetAutopilot(on bool) {
	r.autopilot = on
}

// Size returns the terminal area needed for a board of cols x rows
func Size(cols, rows int) (width, height int) {
	return cols*cellWidth + 2, rows + 4
}

func (r *Renderer) Draw(s game.Snapshot) {
	r.screen.Clear()
	cols, rows := s.Cols(), s.Rows()

	r.drawBorder(cols, rows)

	r.drawCell(s.Cell(s.Fruit), dFood, foodStyle)
	for _, seg := range s.Tail {
		if s.Contains(types.Point{X: seg.X, Y: seg.Y}) {
			r.drawCell(s.Cell(seg), dBody, bodyStyle)
		}
	}
	// A head that just left the board is not drawn
	if s.Contains(types.Point{X: s.Head.X, Y: s.Head.Y}) {
		r.drawCell(s.Cell(s.Head), headRunes[s.Direction], headStyle)
	}

	status := fmt.Sprintf("Score: %d  Best: %d  Games: %d", s.Score, s.BestScore, s.Games)
	if r.autopilot {
		status += "  [autopilot]"
	}
	r.drawText(0, rows+2, status, textStyle)
	if s.Message != "" {
		r.drawText(0, rows+3, s.Message, alertStyle)
	}

	r.screen.Show()
}

func (r *Renderer) drawBorder(cols, rows int) {
	right := cols*cellWidth + 1
	bottom := rows + 1
	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 0, dHoriz, nil, borderStyle)
		r.screen.SetContent(x, bottom, dHoriz, nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		r.screen.SetContent(0, y, dVert, nil, borderStyle)
		r.screen.SetContent(right, y, dVert, nil, borderStyle)
	}
	for _, c := range [][2]int{{0, 0}, {right, 0}, {0, bottom}, {right, bottom}} {
		r.screen.SetContent(c[0], c[1], dCorner, nil, borderStyle)
	}
}

// drawCell paints board cell (x,y), offset by the border
func (r *Renderer) drawCell(cell types.Point, c rune, style tcell.Style) {
	sx := 1 + cell.X*cellWidth
	sy := 1 + cell.Y
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(sx+i, sy, c, nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, c := range []rune(text) {
		r.screen.SetContent(x+i, y, c, nil, style)
	}
}
