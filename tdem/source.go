// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tdem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// LinOp is a linear map applied to a direction vector. A nil LinOp stands for
// the zero map, so callers simply skip the corresponding term.
type LinOp func(v []float64) []float64

// FieldView is the read-only window into stored and derived fields handed to
// sources when they evaluate their model derivatives. Reading a time index
// that has not been stored yet returns an error; sources must not rely on
// fields ahead of the time-stepper.
type FieldView interface {
	Field(srcs []Source, key string, tInd int) ([][]float64, error)
}

// Source defines what all transmitter sources must implement
type Source interface {

	// identification
	Name() string // returns the source name

	// evaluation at a given time
	Eval(prb *Problem, t float64) (sm, se []float64) // magnetic (Nf) and electric (Ne) source terms; nil means zero

	// derivative of the source terms with respect to the model
	EvalDeriv(t float64, fv FieldView, adjoint bool) (smDeriv, seDeriv LinOp)
}

// SrcRawVec is a source given by fixed discrete patterns scaled by a waveform.
// Its source terms carry no model dependence, hence EvalDeriv returns zero maps.
type SrcRawVec struct {
	Tag      string        // name of this source
	Waveform dbf.T // current waveform w(t)
	Sm       []float64     // [Nf] magnetic pattern; nil means zero
	Se       []float64     // [Ne] electric pattern; nil means zero
}

// NewSrcRawVec creates a new raw-vector source
func NewSrcRawVec(tag string, waveform dbf.T, sm, se []float64) (o *SrcRawVec, err error) {
	if waveform == nil {
		err = chk.Err("source %q needs a waveform", tag)
		return
	}
	o = &SrcRawVec{Tag: tag, Waveform: waveform, Sm: sm, Se: se}
	return
}

// Name returns the source name
func (o *SrcRawVec) Name() string { return o.Tag }

// Eval returns the source terms at time t: the fixed patterns scaled by w(t)
func (o *SrcRawVec) Eval(prb *Problem, t float64) (sm, se []float64) {
	a := o.Waveform.F(t, nil)
	if o.Sm != nil {
		sm = make([]float64, len(o.Sm))
		for i, v := range o.Sm {
			sm[i] = a * v
		}
	}
	if o.Se != nil {
		se = make([]float64, len(o.Se))
		for i, v := range o.Se {
			se[i] = a * v
		}
	}
	return
}

// EvalDeriv returns zero maps: the patterns and the waveform do not depend on
// the model
func (o *SrcRawVec) EvalDeriv(t float64, fv FieldView, adjoint bool) (smDeriv, seDeriv LinOp) {
	return nil, nil
}
