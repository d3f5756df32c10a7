// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tdem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// calcB derives fields from a stored magnetic flux density (face space).
// The electric field follows the discrete analogue of
//
//	e = σ⁻¹・curlᵀ・(μ⁻¹・b) - σ⁻¹・Sₑ
//
// with the diagonal mass matrices standing in for the material properties.
type calcB struct {
	prb *Problem
	f   *Fields
}

func (o *calcB) solutionKey() string { return "bSolution" }
func (o *calcB) solutionSize() int   { return o.prb.Msh.Nf }

func (o *calcB) knows(key string) bool {
	return key == "b" || key == "e"
}

// field derives key from the stored flux density
func (o *calcB) field(key string, u [][]float64, srcs []Source, tInd int) ([][]float64, error) {
	switch key {
	case "b":
		return u, nil // the stored field IS the flux density
	case "e":
		return o.e(u, srcs, tInd)
	}
	return nil, chk.Err("field %q is not available from a b-solution container", key)
}

// e computes, per source:  e = MeSigmaI・(Curlᵀ・(MfMui・b) - Sₑ(t))
func (o *calcB) e(b [][]float64, srcs []Source, tInd int) (res [][]float64, err error) {
	ne, nf := o.prb.Msh.Ne, o.prb.Msh.Nf
	t := o.prb.Times[tInd]
	tmpF := make([]float64, nf)
	tmpE := make([]float64, ne)
	res = make([][]float64, len(srcs))
	for i, src := range srcs {
		la.SpMatVecMul(tmpF, 1, o.prb.MfMui, b[i])
		la.SpMatTrVecMul(tmpE, 1, o.prb.EdgeCurl, tmpF)
		_, se := src.Eval(o.prb, t)
		if se != nil {
			for j := 0; j < ne; j++ {
				tmpE[j] -= se[j]
			}
		}
		res[i] = make([]float64, ne)
		la.SpMatVecMul(res[i], 1, o.prb.MeSigmaI, tmpE)
	}
	return
}

// u-derivatives ////////////////////////////////////////////////////////////////////////////////

// bDerivU is the identity map: perturbing the stored solution perturbs b
// identically. The identity is self-adjoint, so both directions coincide.
func (o *calcB) bDerivU(tInd int, src Source, v []float64, adjoint bool) (res []float64, err error) {
	res = make([]float64, len(v))
	la.VecCopy(res, 1, v)
	return
}

// eDerivU applies the linear relation between b and e (or its exact
// transpose in adjoint mode) to the direction vector
func (o *calcB) eDerivU(tInd int, src Source, v []float64, adjoint bool) (res []float64, err error) {
	ne, nf := o.prb.Msh.Ne, o.prb.Msh.Nf
	if adjoint {
		tmpE := make([]float64, ne)
		la.SpMatTrVecMul(tmpE, 1, o.prb.MeSigmaI, v)
		tmpF := make([]float64, nf)
		la.SpMatVecMul(tmpF, 1, o.prb.EdgeCurl, tmpE)
		res = make([]float64, nf)
		la.SpMatTrVecMul(res, 1, o.prb.MfMui, tmpF)
		return
	}
	tmpF := make([]float64, nf)
	la.SpMatVecMul(tmpF, 1, o.prb.MfMui, v)
	tmpE := make([]float64, ne)
	la.SpMatTrVecMul(tmpE, 1, o.prb.EdgeCurl, tmpF)
	res = make([]float64, ne)
	la.SpMatVecMul(res, 1, o.prb.MeSigmaI, tmpE)
	return
}

// m-derivatives ////////////////////////////////////////////////////////////////////////////////

// bDerivM is the zero map: b carries no direct model dependence. The result
// is the additive identity of the space the caller expects (face space
// forward, model space in adjoint mode).
func (o *calcB) bDerivM(tInd int, src Source, v []float64, adjoint bool) (res []float64, err error) {
	if adjoint {
		res = make([]float64, o.prb.NumParams())
		return
	}
	res = make([]float64, o.prb.Msh.Nf)
	return
}

// eDerivM accounts for the model dependence of e through the conductivity
// mass matrix and through the source term:
//
//	forward:  MeSigmaIDeriv(r)・v - MeSigmaI・SₑDeriv(v)
//	adjoint:  MeSigmaIDeriv(r)ᵀ・v - SₑDeriv(MeSigmaIᵀ・v)
//
// with the residual  r = -Sₑ + Curlᵀ・(MfMui・b).
func (o *calcB) eDerivM(tInd int, src Source, v []float64, adjoint bool) (res []float64, err error) {
	ne, nf := o.prb.Msh.Ne, o.prb.Msh.Nf
	t := o.prb.Times[tInd]

	// residual
	b, err := o.f.solutionOf(src, tInd)
	if err != nil {
		return
	}
	tmpF := make([]float64, nf)
	la.SpMatVecMul(tmpF, 1, o.prb.MfMui, b)
	r := make([]float64, ne)
	la.SpMatTrVecMul(r, 1, o.prb.EdgeCurl, tmpF)
	_, se := src.Eval(o.prb, t)
	if se != nil {
		for j := 0; j < ne; j++ {
			r[j] -= se[j]
		}
	}

	// source model-derivative and mass-matrix derivative
	_, seDeriv := src.EvalDeriv(t, o.f, adjoint)
	D := o.prb.MeSigmaIDeriv(r)

	if adjoint {
		res = make([]float64, o.prb.NumParams())
		la.SpMatTrVecMul(res, 1, D, v)
		if seDeriv != nil {
			tmpE := make([]float64, ne)
			la.SpMatTrVecMul(tmpE, 1, o.prb.MeSigmaI, v)
			w := seDeriv(tmpE)
			for j := 0; j < len(res); j++ {
				res[j] -= w[j]
			}
		}
		return
	}

	res = make([]float64, ne)
	la.SpMatVecMul(res, 1, D, v)
	if seDeriv != nil {
		w := seDeriv(v)
		tmpE := make([]float64, ne)
		la.SpMatVecMul(tmpE, 1, o.prb.MeSigmaI, w)
		for j := 0; j < ne; j++ {
			res[j] -= tmpE[j]
		}
	}
	return
}
