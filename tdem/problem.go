// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tdem implements field storage and derivative propagation for
// time-domain electromagnetic simulations. One canonical solution field is
// stored per time step per source; all other physical fields and their
// directional/adjoint derivatives are computed on demand from it.
package tdem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/wassname/simpeg/msh"
)

// Problem bundles the model vectors and the discrete operators fixed for one
// simulation run. All operators are built once by NewProblem and must not be
// modified afterwards; field containers and sources hold them by reference.
type Problem struct {

	// input
	Msh   *msh.TensorMesh // the mesh
	Sigma []float64       // [Nc] cell conductivities (the model)
	Mui   []float64       // [Nc] cell inverse permeabilities
	Times []float64       // time discretization; Times[tInd] is the time of step tInd

	// operators
	MeSigmaI *la.CCMatrix // (Ne x Ne) inverse conductivity edge mass matrix
	EdgeCurl *la.CCMatrix // (Nf x Ne) discrete edge curl
	MfMui    *la.CCMatrix // (Nf x Nf) inverse permeability face mass matrix

	// derived
	dMe []float64 // [Ne] diagonal of the conductivity edge mass matrix
}

// NewProblem creates a new problem, building all operators
func NewProblem(m *msh.TensorMesh, sigma, mui, times []float64) (o *Problem, err error) {

	// check input
	if len(sigma) != m.Nc || len(mui) != m.Nc {
		err = chk.Err("model vectors must have one entry per cell: len(sigma)=%d len(mui)=%d nc=%d", len(sigma), len(mui), m.Nc)
		return
	}
	if len(times) < 1 {
		err = chk.Err("at least one time step is required")
		return
	}
	for c := 0; c < m.Nc; c++ {
		if sigma[c] <= 0 {
			err = chk.Err("conductivity of cell %d is not positive: %v", c, sigma[c])
			return
		}
	}

	// basic data
	o = new(Problem)
	o.Msh = m
	o.Sigma = sigma
	o.Mui = mui
	o.Times = times
	o.EdgeCurl = m.EdgeCurl()

	// inverse conductivity edge mass matrix:  Me = diag(Σ w・σ)
	o.dMe = make([]float64, m.Ne)
	var T la.Triplet
	T.Init(m.Ne, m.Ne, m.Ne)
	for e := 0; e < m.Ne; e++ {
		cells, w := m.EdgeCells(e)
		for n, c := range cells {
			o.dMe[e] += w[n] * sigma[c]
		}
		T.Put(e, e, 1.0/o.dMe[e])
	}
	o.MeSigmaI = T.ToMatrix(nil)

	// inverse permeability face mass matrix:  Mf = diag(Σ w・μ⁻¹)
	var Tf la.Triplet
	Tf.Init(m.Nf, m.Nf, m.Nf)
	for f := 0; f < m.Nf; f++ {
		cells, w := m.FaceCells(f)
		d := 0.0
		for n, c := range cells {
			d += w[n] * mui[c]
		}
		Tf.Put(f, f, d)
	}
	o.MfMui = Tf.ToMatrix(nil)
	return
}

// NumParams returns the number of model parameters (one conductivity per cell)
func (o *Problem) NumParams() int {
	return o.Msh.Nc
}

// MeSigmaIDeriv returns the (Ne x NumParams) linear map
//
//	v ↦ d[MeSigmaI・r]/dσ ・ v  =  -diag(r/dMe²)・We・v
//
// for a fixed edge vector r. The adjoint action is obtained by applying the
// transpose product functions to the same matrix, so forward/adjoint pairs
// are exact transposes by construction.
func (o *Problem) MeSigmaIDeriv(r []float64) *la.CCMatrix {
	m := o.Msh
	nnz := 0
	for e := 0; e < m.Ne; e++ {
		cells, _ := m.EdgeCells(e)
		nnz += len(cells)
	}
	var T la.Triplet
	T.Init(m.Ne, m.Nc, nnz)
	for e := 0; e < m.Ne; e++ {
		cells, w := m.EdgeCells(e)
		coef := -r[e] / (o.dMe[e] * o.dMe[e])
		for n, c := range cells {
			T.Put(e, c, coef*w[n])
		}
	}
	return T.ToMatrix(nil)
}
