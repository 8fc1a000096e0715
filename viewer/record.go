package viewer

import "github.com/mozvip/gopho/scale"

// Record is one image of the working set.
//
// TrueWidth and TrueHeight are the decoded size of the source, expressed in the
// orientation of the currently materialized buffer; zero means the record has
// never been loaded. CurWidth and CurHeight are the size of that buffer, and
// CurRot the clockwise rotation applied to it since decoding.
type Record struct {
	Path string

	TrueWidth, TrueHeight int
	CurWidth, CurHeight   int
	CurRot                int

	// MetadataRot is the orientation hint read on first load.
	MetadataRot int

	Annotation string

	notes uint16

	id, next, prev int
}

func (r *Record) Loaded() bool {
	return r.TrueWidth != 0 && r.TrueHeight != 0
}

func (r *Record) trueSize() scale.Size {
	return scale.Size{W: r.TrueWidth, H: r.TrueHeight}
}

func (r *Record) curSize() scale.Size {
	return scale.Size{W: r.CurWidth, H: r.CurHeight}
}

// HasNote reports whether the record is flagged in note list n.
func (r *Record) HasNote(n int) bool {
	return n >= 0 && n < MaxNotes && r.notes&(1<<uint(n)) != 0
}

func (r *Record) release() {
	r.Annotation = ""
	r.notes = 0
}

func normalize(degrees int) int {
	return ((degrees % 360) + 360) % 360
}
