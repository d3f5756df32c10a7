// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tdem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// calcE derives fields from a stored electric field (edge space). The
// electric field is the identity on the stored solution. Deriving the
// magnetic flux density would require the time-integration relationship
// db/dt = -curl(e), which this variant does not model: all b-paths fail so
// that inversion code never follows a structurally absent derivative.
type calcE struct {
	prb *Problem
	f   *Fields
}

func (o *calcE) solutionKey() string { return "eSolution" }
func (o *calcE) solutionSize() int   { return o.prb.Msh.Ne }

func (o *calcE) knows(key string) bool {
	return key == "e" || key == "b"
}

func (o *calcE) field(key string, u [][]float64, srcs []Source, tInd int) ([][]float64, error) {
	switch key {
	case "e":
		return u, nil
	case "b":
		return nil, chk.Err("deriving b from an e-field solution is not supported")
	}
	return nil, chk.Err("field %q is not available from an e-solution container", key)
}

// eDerivU is the identity map, both directions
func (o *calcE) eDerivU(tInd int, src Source, v []float64, adjoint bool) (res []float64, err error) {
	res = make([]float64, len(v))
	la.VecCopy(res, 1, v)
	return
}

// eDerivM is the zero map: e has no direct model dependence here
func (o *calcE) eDerivM(tInd int, src Source, v []float64, adjoint bool) (res []float64, err error) {
	if adjoint {
		res = make([]float64, o.prb.NumParams())
		return
	}
	res = make([]float64, o.prb.Msh.Ne)
	return
}

func (o *calcE) bDerivU(tInd int, src Source, v []float64, adjoint bool) ([]float64, error) {
	return nil, chk.Err("deriving b from an e-field solution is not supported")
}

func (o *calcE) bDerivM(tInd int, src Source, v []float64, adjoint bool) ([]float64, error) {
	return nil, chk.Err("deriving b from an e-field solution is not supported")
}
