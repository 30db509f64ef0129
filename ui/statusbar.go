package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// StatusBarHeight is the height in pixels of the bar along the window top.
const StatusBarHeight = 20

// StatusBar is a single line of text on a light grey strip.
type StatusBar struct {
	ui    *ebitenui.UI
	label *widget.Text
}

func NewStatusBar() *StatusBar {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	label := widget.NewText(
		widget.TextOpts.Text("", &face, color.Black),
		widget.TextOpts.Position(widget.TextPositionStart, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(colornames.Lightgray)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, StatusBarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
	)
	bar.AddChild(label)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)

	return &StatusBar{ui: &ebitenui.UI{Container: root}, label: label}
}

func (s *StatusBar) SetText(text string) {
	if s.label.Label != text {
		s.label.Label = text
	}
}

func (s *StatusBar) Text() string { return s.label.Label }

func (s *StatusBar) Update() { s.ui.Update() }

func (s *StatusBar) Draw(screen *ebiten.Image) { s.ui.Draw(screen) }
