package editor

import (
	"errors"
	"fmt"
	"image"
	"log"
)

// Canvas is the scene an editor manipulates. *scene.Scene implements it.
type Canvas interface {
	ObjectAt(p image.Point) (int, bool)
	DistanceTo(i int, p image.Point) (image.Point, bool)
	Move(i int, p image.Point) bool
	Delete(i int) bool
	Copy(i int) (int, bool)
	BringToFront(i int) (int, bool)
	SendToBack(i int) (int, bool)
	NextSprite(i int) error
	PrevSprite(i int) error
	Add(p image.Point) (int, error)
	Len() int
	Scale() int
	SetScale(n int)
	SetResolution(w, h int)
	Path() string
	Save() error
	SaveAs(path string) error
	Encode() ([]byte, error)
}

type Options struct {
	// FastMultiplier scales pointer nudges while the fast modifier is held.
	FastMultiplier int
	// Export receives the encoded scene for CmdExport. Nil disables export.
	Export func([]byte) error
}

// Editor is the selection and drag state of one editing session. A selected
// object follows the pointer on every Tick until it is released.
type Editor struct {
	canvas Canvas
	opts   Options

	selected int
	offset   image.Point
	pointer  image.Point
	fast     bool

	status string
	quit   bool
}

func New(c Canvas, opts Options) *Editor {
	if opts.FastMultiplier < 1 {
		opts.FastMultiplier = 10
	}
	return &Editor{canvas: c, opts: opts, selected: -1}
}

// Selected returns the selected object index.
func (e *Editor) Selected() (int, bool) {
	return e.selected, e.selected >= 0
}

func (e *Editor) Pointer() image.Point { return e.pointer }

// Status is the outcome of the last command worth reporting.
func (e *Editor) Status() string { return e.status }

func (e *Editor) Quitting() bool { return e.quit }

func (e *Editor) SetFast(fast bool) { e.fast = fast }

// PointerMoved records the real cursor position.
func (e *Editor) PointerMoved(p image.Point) { e.pointer = p }

// Nudge moves the pointer by (dx, dy) scene units. A unit is one sprite pixel
// at the current scale.
func (e *Editor) Nudge(dx, dy int, fast bool) {
	step := max(e.canvas.Scale(), 1)
	if fast {
		step *= e.opts.FastMultiplier
	}
	e.pointer = e.pointer.Add(image.Pt(dx*step, dy*step))
}

// Resize follows the window size. Object positions are unaffected.
func (e *Editor) Resize(w, h int) {
	e.canvas.SetResolution(w, h)
}

// PrimaryRelease drops the held object, or picks up the object under p.
func (e *Editor) PrimaryRelease(p image.Point) {
	e.pointer = p
	if _, ok := e.Selected(); ok {
		e.deselect()
		return
	}
	i, ok := e.canvas.ObjectAt(p)
	if !ok {
		return
	}
	off, ok := e.canvas.DistanceTo(i, p)
	if !ok {
		return
	}
	e.selectObject(i, off)
}

// SecondaryRelease deletes the object under p.
func (e *Editor) SecondaryRelease(p image.Point) {
	e.pointer = p
	i, ok := e.canvas.ObjectAt(p)
	if !ok {
		return
	}
	if e.canvas.Delete(i) {
		log.Printf("Sprite %d deleted", i)
		e.selected = -1
		e.offset = image.Point{}
	}
}

// Tick drags the selection along with the pointer.
func (e *Editor) Tick() {
	i, ok := e.Selected()
	if !ok {
		return
	}
	if !e.canvas.Move(i, e.pointer.Sub(e.offset)) {
		e.deselect()
	}
}

// Execute runs one command against the current selection.
func (e *Editor) Execute(cmd Command) {
	switch cmd {
	case CmdDuplicate:
		e.withSelection(func(i int) {
			if n, ok := e.canvas.Copy(i); ok {
				e.selected = n
			}
		})
	case CmdBringToFront:
		e.withSelection(func(i int) {
			if n, ok := e.canvas.BringToFront(i); ok {
				e.selected = n
			}
		})
	case CmdSendToBack:
		e.withSelection(func(i int) {
			if n, ok := e.canvas.SendToBack(i); ok {
				e.selected = n
			}
		})
	case CmdNextSprite:
		e.withSelection(func(i int) { e.report(e.canvas.NextSprite(i)) })
	case CmdPrevSprite:
		e.withSelection(func(i int) { e.report(e.canvas.PrevSprite(i)) })
	case CmdSave:
		e.save()
	case CmdZoomIn:
		e.canvas.SetScale(e.canvas.Scale() + 1)
	case CmdZoomOut:
		e.canvas.SetScale(e.canvas.Scale() - 1)
	case CmdCreate:
		i, err := e.canvas.Add(e.pointer)
		if err != nil {
			e.report(err)
			return
		}
		e.selectObject(i, image.Point{})
	case CmdExport:
		e.export()
	case CmdNudgeLeft:
		e.Nudge(-1, 0, e.fast)
	case CmdNudgeRight:
		e.Nudge(1, 0, e.fast)
	case CmdNudgeUp:
		e.Nudge(0, -1, e.fast)
	case CmdNudgeDown:
		e.Nudge(0, 1, e.fast)
	case CmdQuit:
		e.quit = true
	}
}

func (e *Editor) withSelection(fn func(i int)) {
	i, ok := e.Selected()
	if !ok {
		return
	}
	if i >= e.canvas.Len() {
		e.deselect()
		return
	}
	fn(i)
}

func (e *Editor) selectObject(i int, off image.Point) {
	e.selected = i
	e.offset = off
	log.Printf("Sprite %d selected", i)
}

func (e *Editor) deselect() {
	log.Printf("Sprite %d deselected", e.selected)
	e.selected = -1
	e.offset = image.Point{}
}

func (e *Editor) save() {
	if err := e.canvas.Save(); err != nil {
		e.report(err)
		return
	}
	e.status = fmt.Sprintf("Saved %s", e.canvas.Path())
	log.Println(e.status)
}

// SaveAs writes the scene to path, which becomes the save target.
func (e *Editor) SaveAs(path string) {
	if err := e.canvas.SaveAs(path); err != nil {
		e.report(err)
		return
	}
	e.status = fmt.Sprintf("Saved %s", path)
	log.Println(e.status)
}

func (e *Editor) export() {
	if e.opts.Export == nil {
		e.report(errors.New("editor: export: clipboard unavailable"))
		return
	}
	b, err := e.canvas.Encode()
	if err == nil {
		err = e.opts.Export(b)
	}
	if err != nil {
		e.report(fmt.Errorf("editor: export: %w", err))
		return
	}
	e.status = "Scene copied to clipboard"
	log.Println(e.status)
}

func (e *Editor) report(err error) {
	if err == nil {
		return
	}
	e.status = err.Error()
	log.Printf("editor: %v", err)
}
