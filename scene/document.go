package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultScale      = 1
	DefaultBackground = "black"
)

// ErrFormat is wrapped by decoding errors for values of the wrong shape.
var ErrFormat = errors.New("scene: malformed document")

// Object is a sprite placed on the canvas. Its JSON form is
// ["sprite.png", [x, y]].
type Object struct {
	Sprite   string
	Position image.Point
}

func (o Object) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{o.Sprite, [2]int{o.Position.X, o.Position.Y}})
}

func (o *Object) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("%w: object has %d elements, want [sprite, [x, y]]", ErrFormat, len(raw))
	}
	var name string
	if err := json.Unmarshal(raw[0], &name); err != nil {
		return fmt.Errorf("object sprite: %w", err)
	}
	var pos []int
	if err := json.Unmarshal(raw[1], &pos); err != nil {
		return fmt.Errorf("object position: %w", err)
	}
	if len(pos) != 2 {
		return fmt.Errorf("%w: object position has %d elements, want [x, y]", ErrFormat, len(pos))
	}
	*o = Object{Sprite: name, Position: image.Pt(pos[0], pos[1])}
	return nil
}

// Document is the persisted scene. Keys it does not know are kept in
// extras and written back unchanged.
type Document struct {
	Resolution image.Point
	Scale      int
	Objects    []Object
	Background string

	extras map[string]json.RawMessage
}

// NewDocument returns a document holding the default values.
func NewDocument() Document {
	return Document{
		Resolution: image.Pt(DefaultWidth, DefaultHeight),
		Scale:      DefaultScale,
		Background: DefaultBackground,
	}
}

// Extra returns the raw value of a key the document does not interpret.
func (d Document) Extra(key string) (json.RawMessage, bool) {
	v, ok := d.extras[key]
	return v, ok
}

// UnmarshalJSON fills omitted keys with their defaults.
func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("%w: document is null", ErrFormat)
	}

	doc := NewDocument()
	if v, ok := raw["resolution"]; ok {
		var res []int
		if err := json.Unmarshal(v, &res); err != nil {
			return fmt.Errorf("resolution: %w", err)
		}
		if len(res) != 2 || res[0] <= 0 || res[1] <= 0 {
			return fmt.Errorf("%w: resolution %v, want [width, height]", ErrFormat, res)
		}
		doc.Resolution = image.Pt(res[0], res[1])
		delete(raw, "resolution")
	}
	if v, ok := raw["scale"]; ok {
		if err := json.Unmarshal(v, &doc.Scale); err != nil {
			return fmt.Errorf("scale: %w", err)
		}
		if doc.Scale < 1 {
			return fmt.Errorf("%w: scale %d, want >= 1", ErrFormat, doc.Scale)
		}
		delete(raw, "scale")
	}
	if v, ok := raw["objects"]; ok {
		if err := json.Unmarshal(v, &doc.Objects); err != nil {
			return fmt.Errorf("objects: %w", err)
		}
		delete(raw, "objects")
	}
	if v, ok := raw["background"]; ok {
		if err := json.Unmarshal(v, &doc.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
		delete(raw, "background")
	}
	if len(raw) > 0 {
		doc.extras = raw
	}
	*d = doc
	return nil
}

// MarshalJSON always writes the four known keys alongside the extras.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extras)+4)
	for k, v := range d.extras {
		out[k] = v
	}

	objects := d.Objects
	if objects == nil {
		objects = []Object{}
	}
	fields := []struct {
		key string
		val any
	}{
		{"resolution", [2]int{d.Resolution.X, d.Resolution.Y}},
		{"scale", d.Scale},
		{"objects", objects},
		{"background", d.Background},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		out[f.key] = b
	}
	return json.Marshal(out)
}
