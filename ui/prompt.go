package ui

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PromptLine writes label to w and reads one line from r, without the line
// ending. A final line without a newline is accepted.
func PromptLine(r io.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprint(w, label); err != nil {
		return "", err
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("ui: prompt: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt is a one-line text input drawn over the window. While open it
// captures typed characters; Enter submits and Escape cancels.
//
// Backspace removes a whole rune, so multi-byte input never leaves a broken
// UTF-8 tail.
type Prompt struct {
	open    bool
	label   string
	input   string
	onEnter func(string)
}

func NewPrompt() *Prompt { return &Prompt{} }

func (p *Prompt) IsOpen() bool { return p.open }

func (p *Prompt) Open(label, initial string, onEnter func(string)) {
	p.label = label
	p.input = initial
	p.onEnter = onEnter
	p.open = true
}

func (p *Prompt) Close() {
	p.open = false
	p.label = ""
	p.input = ""
	p.onEnter = nil
}

// Update handles typing and reports whether the prompt kept the input focus.
// The tick that closes the prompt with Enter or Escape still reports true,
// so the same key press never reaches the window's own bindings (Escape
// would otherwise also quit). The Enter callback may open a new prompt.
func (p *Prompt) Update() bool {
	if !p.open {
		return false
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == '\n' || r == '\r' {
			continue
		}
		p.input += string(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.input) > 0 {
		runes := []rune(p.input)
		p.input = string(runes[:len(runes)-1])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		cur, fn := p.input, p.onEnter
		p.open = false
		if fn != nil {
			fn(cur)
		}
		if p.open {
			return true
		}
		p.Close()
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.Close()
		return true
	}
	return true
}

// promptHeight is the height of the band behind the prompt text.
const promptHeight = 2 * StatusBarHeight

// debugLineHeight is the glyph height of ebitenutil's debug font.
const debugLineHeight = 16

// Draw shades a band across the middle of screen and prints the prompt in
// it. The band image is freed after each draw.
func (p *Prompt) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	b := screen.Bounds()
	top := b.Dy()/2 - promptHeight/2
	back := ebiten.NewImage(b.Dx(), promptHeight)
	defer back.Deallocate()
	back.Fill(color.RGBA{A: 0x88})
	o := &ebiten.DrawImageOptions{}
	o.GeoM.Translate(0, float64(top))
	screen.DrawImage(back, o)
	ebitenutil.DebugPrintAt(screen, p.label+" "+p.input, debugLineHeight, top+(promptHeight-debugLineHeight)/2)
}
