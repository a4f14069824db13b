package command

import (
	"fmt"

	"github.com/setanarut/drawgram/shape"
)

// ShapeKey identifies a direct-mode symbol: a shape kind drawn in a named colour.
type ShapeKey struct {
	Kind  shape.Kind
	Color string
}

// ShapeTable maps direct-mode symbols to commands. Missing keys map to nothing.
type ShapeTable map[ShapeKey]string

var (
	// ScriptShapes is the vocabulary used for drawings loaded from files.
	ScriptShapes = ShapeTable{
		{shape.Circle, "white"}: "print('Hello World!')",
		{shape.Square, "red"}:   "x = 1",
	}
	// LiveShapes is the vocabulary of the live drawing surface. Only black strokes map.
	LiveShapes = ShapeTable{
		{shape.Circle, "black"}: "print('Hello from Live Draw!')",
		{shape.Square, "black"}: "x = 42",
	}
)

// Map returns the command for kind drawn in colour, if any.
func (t ShapeTable) Map(kind shape.Kind, colour string) (string, bool) {
	cmd, ok := t[ShapeKey{Kind: kind, Color: colour}]
	return cmd, ok
}

// IndexMapper maps palette indices to commands of one mode.
type IndexMapper struct {
	mode  Mode
	table Table
}

// NewIndexMapper builds the mapper of mode. Modes outside the enum are
// rejected here so that Map itself can never fail.
func NewIndexMapper(mode Mode) (*IndexMapper, error) {
	t, err := TableFor(mode)
	if err != nil {
		return nil, err
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: %s has an empty table", ErrUnknownMode, mode)
	}
	return &IndexMapper{mode: mode, table: t}, nil
}

func (m *IndexMapper) Mode() Mode { return m.mode }

// Map returns table[index mod len(table)].
func (m *IndexMapper) Map(index int) string {
	return m.table.At(index)
}
