package viewer

import "github.com/mozvip/gopho/scale"

// Plan is the decision half of a scale-and-rotate: sizes, reload and the order
// of operations are all settled from record state before any pixel moves.
//
// Target, Current and True are expressed in the orientation the image has
// once Degrees has been applied.
type Plan struct {
	// Degrees is the clockwise rotation still to apply to the buffer.
	Degrees int
	// BaseRot is the rotation of the buffer the plan starts from.
	BaseRot int
	// Reload asks for the source to be decoded again before transforming,
	// because the buffer was scaled down and now has to grow.
	Reload bool
	// RotateFirst rotates before scaling, so the rotation runs on the
	// smaller raster.
	RotateFirst bool

	Target  scale.Size
	Current scale.Size
	True    scale.Size
}

// NewPlan works out how to bring rec to its display size after rotating it by
// degrees relative to its current rotation.
func NewPlan(rec *Record, degrees int, in scale.Input) (Plan, error) {
	d := normalize(degrees)
	p := Plan{
		Degrees: d,
		BaseRot: rec.CurRot,
		True:    rec.trueSize(),
		Current: rec.curSize(),
	}
	if d%180 != 0 {
		p.True, p.Current = p.True.Swap(), p.Current.Swap()
	}

	in.True, in.Current = p.True, p.Current
	target, err := scale.Target(in)
	if err != nil {
		return p, err
	}
	p.Target = target

	if p.Target.Larger(p.Current) && p.Current.W < p.True.W && p.Current.H < p.True.H {
		p.Reload = true
		p.Degrees = normalize(d + rec.CurRot)
		p.BaseRot = 0

		raw := rec.trueSize()
		if rec.CurRot%180 != 0 {
			raw = raw.Swap()
		}
		p.Rebase(raw)
		return p, nil
	}

	p.RotateFirst = p.Degrees != 0 && p.Target.Larger(p.Current)
	return p, nil
}

// Rebase moves the plan onto a freshly decoded, unrotated buffer of size raw.
// Degrees is then absolute, so whether the aspect changes is judged against
// zero rotation.
func (p *Plan) Rebase(raw scale.Size) {
	p.True = raw
	if p.Degrees%180 != 0 {
		p.True = raw.Swap()
	}
	p.Current = p.True
	p.RotateFirst = p.Degrees != 0 && p.Target.Larger(p.Current)
}

// ScaleSize is the size to resample to, in the orientation the buffer has at
// the moment the scale runs.
func (p Plan) ScaleSize() scale.Size {
	if p.RotateFirst || p.Degrees%180 == 0 {
		return p.Target
	}
	return p.Target.Swap()
}

// FinalRot is the record rotation once the plan has been applied.
func (p Plan) FinalRot() int {
	return normalize(p.BaseRot + p.Degrees)
}
