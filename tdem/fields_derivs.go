// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tdem

// FieldsDerivs banks directional-derivative fields per time step during a
// sensitivity computation. It is storage only: nothing is derived from the
// stored vectors. All four derivative keys are registered so inversion
// drivers can allocate it without knowing which formulation produced the
// solution:
//
//	"bDeriv", "jDeriv" => face space
//	"eDeriv", "hDeriv" => edge space
type FieldsDerivs struct {
	store *TimeStore
}

// NewFieldsDerivs creates a derivative-field container for the problem's
// time discretization
func NewFieldsDerivs(prb *Problem) (o *FieldsDerivs) {
	o = &FieldsDerivs{store: NewTimeStore(len(prb.Times))}
	o.store.Register("bDeriv", prb.Msh.Nf)
	o.store.Register("jDeriv", prb.Msh.Nf)
	o.store.Register("eDeriv", prb.Msh.Ne)
	o.store.Register("hDeriv", prb.Msh.Ne)
	return
}

// Set stores the derivative columns of key at time index tInd
func (o *FieldsDerivs) Set(key string, tInd int, u [][]float64) error {
	return o.store.Set(key, tInd, u)
}

// Get returns the derivative columns of key at time index tInd
func (o *FieldsDerivs) Get(key string, tInd int) ([][]float64, error) {
	return o.store.Get(key, tInd)
}
