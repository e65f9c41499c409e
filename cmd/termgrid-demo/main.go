package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/termgrid/terminal"
)

func main() {
	screen := terminal.New()
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.StartColor()

	root := screen.Root()
	root.SetKeypad(true)
	root.SetTimeout(33)

	boldWhite := terminal.AttrBold
	green := terminal.ColorPair(screen.AllocPair(terminal.ColorGreen, terminal.ColorBlack))
	cyan := terminal.ColorPair(screen.AllocPair(terminal.ColorCyan, terminal.ColorBlack))
	inverse := terminal.AttrReverse

	status := screen.NewWindow(1, 60, 12, 2)
	status.SetBackground(inverse)

	curY, curX := 5, 10
	frame := 0
	start := time.Now()

	for {
		rows, cols := screen.Size()

		root.SetAttr(boldWhite)
		root.PrintAt(0, 2, "termgrid demo")
		root.SetAttr(cyan)
		root.PrintAt(1, 2, "arrows move the marker, q quits")
		root.SetAttr(terminal.AttrNormal)
		root.Printf("  %dx%d", rows, cols)

		// Moving marker with a trail
		root.SetAttr(terminal.AttrNormal)
		root.PrintAt(curY, curX, " ")
		switch root.Getch() {
		case 'q':
			return
		case terminal.KeyUp:
			if curY > 3 {
				curY--
			}
		case terminal.KeyDown:
			if curY < rows-3 {
				curY++
			}
		case terminal.KeyLeft:
			if curX > 0 {
				curX--
			}
		case terminal.KeyRight:
			if curX < cols-1 {
				curX++
			}
		}
		root.SetAttr(green | terminal.AttrBold)
		root.PrintAt(curY, curX, "@")

		frame++
		status.Clear()
		status.SetAttr(inverse)
		status.Printf(" frame %d  uptime %s  pos %d,%d ",
			frame, time.Since(start).Truncate(time.Second), curY, curX)
		status.Refresh()

		screen.Refresh()
	}
}
