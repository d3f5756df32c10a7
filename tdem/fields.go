// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tdem

import (
	"github.com/cpmech/gosl/chk"
)

// calc defines the variant-specific field derivations and their directional
// derivatives. The set of field keys each variant understands is closed and
// fixed at compile time; there is exactly one implementation per canonical
// solution field (calcB and calcE).
//
// The u-derivatives capture the dependence on the stored solution and the
// m-derivatives the direct dependence on the model. Their adjoint actions
// must be the exact matrix transposes of the forward actions; the inversion
// gradient is wrong otherwise.
type calc interface {
	solutionKey() string                                                           // key of the canonical stored field
	solutionSize() int                                                             // number of degrees of freedom of the stored field
	knows(key string) bool                                                         // whether key can be requested from this variant
	field(key string, u [][]float64, srcs []Source, tInd int) ([][]float64, error) // derive field from the stored solution
	eDerivU(tInd int, src Source, v []float64, adjoint bool) ([]float64, error)
	eDerivM(tInd int, src Source, v []float64, adjoint bool) ([]float64, error)
	bDerivU(tInd int, src Source, v []float64, adjoint bool) ([]float64, error)
	bDerivM(tInd int, src Source, v []float64, adjoint bool) ([]float64, error)
}

// Fields stores one canonical solution field per time step per source and
// derives all other physical fields and their derivatives on demand.
//
//	f := tdem.NewFieldsB(prb, srcs)   // or NewFieldsE
//	f.SetSolution(tInd, u)            // written once per time step
//	e, err := f.Field(srcs, "e", tInd)
type Fields struct {
	prb   *Problem   // problem with operators (immutable during a run)
	srcs  []Source   // all sources, fixing the column order of stored matrices
	store *TimeStore // (key, tInd) => column vectors
	cc    calc       // variant-specific derivations
}

// newFields creates the engine around a given variant
func newFields(prb *Problem, srcs []Source, cc calc) (o *Fields) {
	o = &Fields{prb: prb, srcs: srcs, cc: cc}
	o.store = NewTimeStore(len(prb.Times))
	o.store.Register(cc.solutionKey(), cc.solutionSize())
	return
}

// NewFieldsB creates a field container whose canonical solution is the
// magnetic flux density (face space)
func NewFieldsB(prb *Problem, srcs []Source) *Fields {
	cb := &calcB{prb: prb}
	o := newFields(prb, srcs, cb)
	cb.f = o
	return o
}

// NewFieldsE creates a field container whose canonical solution is the
// electric field (edge space)
func NewFieldsE(prb *Problem, srcs []Source) *Fields {
	ce := &calcE{prb: prb}
	o := newFields(prb, srcs, ce)
	ce.f = o
	return o
}

// SolutionKey returns the key of the canonical stored field
func (o *Fields) SolutionKey() string {
	return o.cc.solutionKey()
}

// SetSolution stores the canonical field for all sources at time index tInd.
// u must hold one column (length solutionSize) per source, in source order.
func (o *Fields) SetSolution(tInd int, u [][]float64) (err error) {
	if len(u) != len(o.srcs) {
		return chk.Err("one solution column per source is required: got %d columns for %d sources", len(u), len(o.srcs))
	}
	return o.store.Set(o.cc.solutionKey(), tInd, u)
}

// Field returns the requested physical field at time index tInd for the given
// sources. The canonical field is read straight from the store; derived
// fields are recomputed on every call.
func (o *Fields) Field(srcs []Source, key string, tInd int) (res [][]float64, err error) {
	u, err := o.columns(srcs, tInd)
	if err != nil {
		return
	}
	if key == o.cc.solutionKey() {
		res = u
		return
	}
	if !o.cc.knows(key) {
		err = chk.Err("field %q is not available from a %q container", key, o.cc.solutionKey())
		return
	}
	return o.cc.field(key, u, srcs, tInd)
}

// forward derivatives //////////////////////////////////////////////////////////////////////////

// EDeriv returns the total directional derivative of the electric field:
// the chain through the stored solution applied to dunDmV plus the direct
// model dependence applied to v.
func (o *Fields) EDeriv(tInd int, src Source, dunDmV, v []float64) (res []float64, err error) {
	du, err := o.cc.eDerivU(tInd, src, dunDmV, false)
	if err != nil {
		return
	}
	dm, err := o.cc.eDerivM(tInd, src, v, false)
	if err != nil {
		return
	}
	return addVecs(du, dm)
}

// BDeriv returns the total directional derivative of the magnetic flux density
func (o *Fields) BDeriv(tInd int, src Source, dunDmV, v []float64) (res []float64, err error) {
	du, err := o.cc.bDerivU(tInd, src, dunDmV, false)
	if err != nil {
		return
	}
	dm, err := o.cc.bDerivM(tInd, src, v, false)
	if err != nil {
		return
	}
	return addVecs(du, dm)
}

// adjoint derivatives //////////////////////////////////////////////////////////////////////////

// EDerivAdjoint propagates v backwards through the electric-field derivation.
// The two outputs live in different spaces and are returned unsummed: du is
// the contribution in the stored-solution space and dm the one in the model
// space; the caller accumulates them separately.
func (o *Fields) EDerivAdjoint(tInd int, src Source, v []float64) (du, dm []float64, err error) {
	du, err = o.cc.eDerivU(tInd, src, v, true)
	if err != nil {
		return
	}
	dm, err = o.cc.eDerivM(tInd, src, v, true)
	return
}

// BDerivAdjoint propagates v backwards through the flux-density derivation
func (o *Fields) BDerivAdjoint(tInd int, src Source, v []float64) (du, dm []float64, err error) {
	du, err = o.cc.bDerivU(tInd, src, v, true)
	if err != nil {
		return
	}
	dm, err = o.cc.bDerivM(tInd, src, v, true)
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// columns fetches the stored solution columns of the given sources at tInd
func (o *Fields) columns(srcs []Source, tInd int) (u [][]float64, err error) {
	all, err := o.store.Get(o.cc.solutionKey(), tInd)
	if err != nil {
		return
	}
	u = make([][]float64, len(srcs))
	for i, src := range srcs {
		idx, e := o.srcIndex(src)
		if e != nil {
			return nil, e
		}
		u[i] = all[idx]
	}
	return
}

// solutionOf fetches the stored solution column of one source at tInd
func (o *Fields) solutionOf(src Source, tInd int) (u []float64, err error) {
	all, err := o.store.Get(o.cc.solutionKey(), tInd)
	if err != nil {
		return
	}
	idx, err := o.srcIndex(src)
	if err != nil {
		return
	}
	u = all[idx]
	return
}

// srcIndex returns the column index of src
func (o *Fields) srcIndex(src Source) (idx int, err error) {
	for i, s := range o.srcs {
		if s == src {
			return i, nil
		}
	}
	err = chk.Err("source %q does not belong to this field container", src.Name())
	return
}

// addVecs returns a+b
func addVecs(a, b []float64) (res []float64, err error) {
	if len(a) != len(b) {
		err = chk.Err("cannot add vectors with different lengths: %d != %d", len(a), len(b))
		return
	}
	res = make([]float64, len(a))
	for i := 0; i < len(a); i++ {
		res[i] = a[i] + b[i]
	}
	return
}
