package status

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Patch is a partial task update. Nil fields are left untouched; Fields
// carries keys the board does not interpret.
type Patch struct {
	Title            *string
	Status           *string
	ColumnIdentifier *string
	Overdue          *bool
	Fields           map[string]any
}

// TouchesStatus reports whether applying p can change the resolved status.
func (p Patch) TouchesStatus() bool {
	return p.Status != nil || p.ColumnIdentifier != nil
}

// Apply returns t with p applied.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ColumnIdentifier != nil {
		t.ColumnIdentifier = *p.ColumnIdentifier
	}
	if p.Overdue != nil {
		t.Overdue = *p.Overdue
	}
	return t
}

// ParsePatch decodes a JSON object such as {"status": 15} into a Patch.
func ParsePatch(data []byte) (Patch, error) {
	if !gjson.ValidBytes(data) {
		return Patch{}, fmt.Errorf("patch is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Patch{}, fmt.Errorf("patch must be a JSON object")
	}

	var p Patch
	root.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "title":
			s := textOf(value)
			p.Title = &s
		case "status":
			s := textOf(value)
			p.Status = &s
		case "column_identifier", "column":
			s := textOf(value)
			p.ColumnIdentifier = &s
		case "atrasado", "overdue":
			b := value.Bool()
			p.Overdue = &b
		default:
			if p.Fields == nil {
				p.Fields = make(map[string]any)
			}
			p.Fields[key.String()] = value.Value()
		}
		return true
	})
	return p, nil
}

// StringPtr is a convenience for building patches in code.
func StringPtr(s string) *string {
	return &s
}
