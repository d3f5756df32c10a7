// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tdem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"
)

// unitWaveform returns a constant unit waveform
func unitWaveform(tst *testing.T) dbf.T {
	w, err := dbf.New("cte", dbf.Params{&dbf.P{N: "c", V: 1}})
	if err != nil {
		tst.Fatalf("cannot create waveform:\n%v", err)
	}
	return w
}

// randVec returns a random vector with entries in [-1,1]
func randVec(n int) (v []float64) {
	v = make([]float64, n)
	for i := 0; i < n; i++ {
		v[i] = rnd.Float64(-1, 1)
	}
	return
}

// mdlSrc is a test source whose electric term carries an explicit model
// dependence through the dense coupling matrix G (Ne x Nc)
type mdlSrc struct {
	tag  string
	wave dbf.T
	se   []float64   // electric pattern
	G    [][]float64 // d(Se)/dm
}

func (o *mdlSrc) Name() string { return o.tag }

func (o *mdlSrc) Eval(prb *Problem, t float64) (sm, se []float64) {
	a := o.wave.F(t, nil)
	se = make([]float64, len(o.se))
	for i, v := range o.se {
		se[i] = a * v
	}
	return
}

func (o *mdlSrc) EvalDeriv(t float64, fv FieldView, adjoint bool) (smDeriv, seDeriv LinOp) {
	ne := len(o.G)
	nc := len(o.G[0])
	if adjoint {
		seDeriv = func(w []float64) []float64 {
			res := make([]float64, nc)
			la.MatTrVecMulAdd(res, 1, o.G, w) // res += Gᵀ w
			return res
		}
		return
	}
	seDeriv = func(v []float64) []float64 {
		res := make([]float64, ne)
		la.MatVecMul(res, 1, o.G, v)
		return res
	}
	return
}

// scalarsClose checks a==b within a relative tolerance
func scalarsClose(tst *testing.T, msg string, tolrel, a, b float64) {
	chk.Scalar(tst, msg, tolrel*(1+math.Abs(a)), a, b)
}

// tests /////////////////////////////////////////////////////////////////////////////////////////

func Test_fields01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields01. b identity and e derivation, end-to-end")

	prb := testProblem(tst, nil)
	m := prb.Msh

	// zero source: waveform "zero"
	src, err := NewSrcRawVec("loop", &dbf.Zero, nil, nil)
	if err != nil {
		tst.Fatalf("NewSrcRawVec failed:\n%v", err)
	}
	srcs := []Source{src}
	f := NewFieldsB(prb, srcs)
	chk.StrAssert(f.SolutionKey(), "bSolution")

	// store a known flux density at every step
	b := make([]float64, m.Nf)
	la.VecFill(b, 1e-3)
	for tInd := 0; tInd < len(prb.Times); tInd++ {
		col := make([]float64, m.Nf)
		la.VecCopy(col, 1, b)
		err = f.SetSolution(tInd, [][]float64{col})
		if err != nil {
			tst.Errorf("SetSolution failed:\n%v", err)
			return
		}
	}

	// b is returned unchanged, bit-for-bit
	bb, err := f.Field(srcs, "b", 0)
	if err != nil {
		tst.Errorf("Field(b) failed:\n%v", err)
		return
	}
	for i := 0; i < m.Nf; i++ {
		if bb[0][i] != b[i] {
			tst.Errorf("b[%d] was not returned unchanged", i)
			return
		}
	}

	// e must equal MeSigmaI・Curlᵀ・MfMui・b exactly (the source term is zero)
	e, err := f.Field(srcs, "e", 1)
	if err != nil {
		tst.Errorf("Field(e) failed:\n%v", err)
		return
	}
	tmpF := make([]float64, m.Nf)
	la.SpMatVecMul(tmpF, 1, prb.MfMui, b)
	tmpE := make([]float64, m.Ne)
	la.SpMatTrVecMul(tmpE, 1, prb.EdgeCurl, tmpF)
	ecorrect := make([]float64, m.Ne)
	la.SpMatVecMul(ecorrect, 1, prb.MeSigmaI, tmpE)
	chk.Vector(tst, "e", 1e-17, e[0], ecorrect)

	// unknown field keys are rejected
	_, err = f.Field(srcs, "h", 0)
	if err == nil {
		tst.Errorf("unknown field key must fail")
	}
}

func Test_fields02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields02. adjoint consistency of the e derivatives")

	rnd.Init(17)
	prb := testProblem(tst, nil)
	m := prb.Msh
	nc := prb.NumParams()

	// model-dependent source
	G := la.MatAlloc(m.Ne, nc)
	for i := 0; i < m.Ne; i++ {
		for j := 0; j < nc; j++ {
			G[i][j] = rnd.Float64(-1, 1)
		}
	}
	src := &mdlSrc{tag: "wire", wave: unitWaveform(tst), se: randVec(m.Ne), G: G}
	srcs := []Source{src}

	f := NewFieldsB(prb, srcs)
	for tInd := 0; tInd < len(prb.Times); tInd++ {
		f.SetSolution(tInd, [][]float64{randVec(m.Nf)})
	}

	// <w, eDerivU p> == <eDerivUᵀ w, p>
	for it := 0; it < 3; it++ {
		p := randVec(m.Nf)
		w := randVec(m.Ne)
		fwd, err := f.cc.eDerivU(1, src, p, false)
		if err != nil {
			tst.Errorf("eDerivU failed:\n%v", err)
			return
		}
		adj, err := f.cc.eDerivU(1, src, w, true)
		if err != nil {
			tst.Errorf("adjoint eDerivU failed:\n%v", err)
			return
		}
		scalarsClose(tst, io.Sf("eDerivU dot #%d", it), 1e-8, la.VecDot(w, fwd), la.VecDot(adj, p))
	}

	// <w, eDerivM q> == <eDerivMᵀ w, q>
	for it := 0; it < 3; it++ {
		q := randVec(nc)
		w := randVec(m.Ne)
		fwd, err := f.cc.eDerivM(1, src, q, false)
		if err != nil {
			tst.Errorf("eDerivM failed:\n%v", err)
			return
		}
		adj, err := f.cc.eDerivM(1, src, w, true)
		if err != nil {
			tst.Errorf("adjoint eDerivM failed:\n%v", err)
			return
		}
		scalarsClose(tst, io.Sf("eDerivM dot #%d", it), 1e-8, la.VecDot(w, fwd), la.VecDot(adj, q))
	}

	// e-solution container: identity u-derivative
	fe := NewFieldsE(prb, srcs)
	for tInd := 0; tInd < len(prb.Times); tInd++ {
		fe.SetSolution(tInd, [][]float64{randVec(m.Ne)})
	}
	p := randVec(m.Ne)
	w := randVec(m.Ne)
	fwd, err := fe.cc.eDerivU(1, src, p, false)
	if err != nil {
		tst.Errorf("eDerivU failed:\n%v", err)
		return
	}
	adj, err := fe.cc.eDerivU(1, src, w, true)
	if err != nil {
		tst.Errorf("adjoint eDerivU failed:\n%v", err)
		return
	}
	scalarsClose(tst, "identity eDerivU dot", 1e-12, la.VecDot(w, fwd), la.VecDot(adj, p))
	chk.Vector(tst, "identity", 1e-17, fwd, p)
}

func Test_fields03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields03. zero model-dependence maps")

	rnd.Init(99)
	prb := testProblem(tst, nil)
	m := prb.Msh
	src, _ := NewSrcRawVec("loop", unitWaveform(tst), nil, nil)
	srcs := []Source{src}

	f := NewFieldsB(prb, srcs)
	f.SetSolution(0, [][]float64{randVec(m.Nf)})

	// forward: face space; adjoint: model space. both all-zero
	z, err := f.cc.bDerivM(0, src, randVec(prb.NumParams()), false)
	if err != nil {
		tst.Errorf("bDerivM failed:\n%v", err)
		return
	}
	chk.IntAssert(len(z), m.Nf)
	chk.Scalar(tst, "norm(bDerivM fwd)", 1e-17, la.VecNorm(z), 0)

	z, err = f.cc.bDerivM(0, src, randVec(m.Nf), true)
	if err != nil {
		tst.Errorf("adjoint bDerivM failed:\n%v", err)
		return
	}
	chk.IntAssert(len(z), prb.NumParams())
	chk.Scalar(tst, "norm(bDerivM adj)", 1e-17, la.VecNorm(z), 0)

	// the raw-vector source has no model dependence either, so the e-solution
	// variant's eDerivM is a zero map as well
	fe := NewFieldsE(prb, srcs)
	fe.SetSolution(0, [][]float64{randVec(m.Ne)})
	z, err = fe.cc.eDerivM(0, src, randVec(prb.NumParams()), false)
	if err != nil {
		tst.Errorf("eDerivM failed:\n%v", err)
		return
	}
	chk.IntAssert(len(z), m.Ne)
	chk.Scalar(tst, "norm(eDerivM fwd)", 1e-17, la.VecNorm(z), 0)
}

func Test_fields04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields04. forward derivative is the sum of its parts")

	rnd.Init(31)
	prb := testProblem(tst, nil)
	m := prb.Msh
	nc := prb.NumParams()

	G := la.MatAlloc(m.Ne, nc)
	for i := 0; i < m.Ne; i++ {
		for j := 0; j < nc; j++ {
			G[i][j] = rnd.Float64(-1, 1)
		}
	}
	src := &mdlSrc{tag: "wire", wave: unitWaveform(tst), se: randVec(m.Ne), G: G}
	srcs := []Source{src}

	f := NewFieldsB(prb, srcs)
	for tInd := 0; tInd < len(prb.Times); tInd++ {
		f.SetSolution(tInd, [][]float64{randVec(m.Nf)})
	}

	dunDmV := randVec(m.Nf)
	v := randVec(nc)

	tot, err := f.EDeriv(2, src, dunDmV, v)
	if err != nil {
		tst.Errorf("EDeriv failed:\n%v", err)
		return
	}
	du, err := f.cc.eDerivU(2, src, dunDmV, false)
	if err != nil {
		tst.Errorf("eDerivU failed:\n%v", err)
		return
	}
	dm, err := f.cc.eDerivM(2, src, v, false)
	if err != nil {
		tst.Errorf("eDerivM failed:\n%v", err)
		return
	}
	sum := make([]float64, m.Ne)
	for i := 0; i < m.Ne; i++ {
		sum[i] = du[i] + dm[i]
	}
	chk.Vector(tst, "EDeriv == eDerivU + eDerivM", 1e-17, tot, sum)

	// b: identity u-part plus zero m-part
	btot, err := f.BDeriv(2, src, dunDmV, v)
	if err != nil {
		tst.Errorf("BDeriv failed:\n%v", err)
		return
	}
	chk.Vector(tst, "BDeriv == dunDmV", 1e-17, btot, dunDmV)

	// adjoint pair comes back unsummed, in different spaces
	wv := randVec(m.Ne)
	adjU, adjM, err := f.EDerivAdjoint(2, src, wv)
	if err != nil {
		tst.Errorf("EDerivAdjoint failed:\n%v", err)
		return
	}
	chk.IntAssert(len(adjU), m.Nf)
	chk.IntAssert(len(adjM), nc)
}

func Test_fields05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields05. unsupported b-paths on the e-solution container")

	rnd.Init(7)
	prb := testProblem(tst, nil)
	m := prb.Msh
	src, _ := NewSrcRawVec("loop", unitWaveform(tst), nil, nil)
	srcs := []Source{src}

	fe := NewFieldsE(prb, srcs)
	fe.SetSolution(0, [][]float64{randVec(m.Ne)})

	if _, err := fe.Field(srcs, "b", 0); err == nil {
		tst.Errorf("Field(b) must fail on an e-solution container")
		return
	}
	if _, err := fe.BDeriv(0, src, randVec(m.Nf), randVec(prb.NumParams())); err == nil {
		tst.Errorf("BDeriv must fail on an e-solution container")
		return
	}
	if _, _, err := fe.BDerivAdjoint(0, src, randVec(m.Nf)); err == nil {
		tst.Errorf("BDerivAdjoint must fail on an e-solution container")
	}
}

func Test_fields06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields06. store access contract")

	rnd.Init(5)
	prb := testProblem(tst, nil)
	m := prb.Msh
	src, _ := NewSrcRawVec("loop", unitWaveform(tst), nil, nil)
	srcs := []Source{src}
	f := NewFieldsB(prb, srcs)

	// read before write fails loudly (also through the FieldView capability)
	if _, err := f.Field(srcs, "bSolution", 0); err == nil {
		tst.Errorf("read before write must fail")
		return
	}
	var fv FieldView = f
	if _, err := fv.Field(srcs, "e", 2); err == nil {
		tst.Errorf("FieldView read of an unpopulated time index must fail")
		return
	}

	// column count and sizes are validated
	if err := f.SetSolution(0, [][]float64{randVec(m.Nf), randVec(m.Nf)}); err == nil {
		tst.Errorf("column count mismatch must fail")
		return
	}
	if err := f.SetSolution(0, [][]float64{randVec(m.Ne)}); err == nil {
		tst.Errorf("wrong column size must fail")
		return
	}

	// foreign sources are rejected
	f.SetSolution(0, [][]float64{randVec(m.Nf)})
	other, _ := NewSrcRawVec("other", unitWaveform(tst), nil, nil)
	if _, err := f.Field([]Source{other}, "b", 0); err == nil {
		tst.Errorf("foreign source must be rejected")
		return
	}

	// out-of-range time indices
	if err := f.SetSolution(len(prb.Times), [][]float64{randVec(m.Nf)}); err == nil {
		tst.Errorf("out-of-range time index must fail")
	}

	// derivative container registers all four keys
	fd := NewFieldsDerivs(prb)
	if err := fd.Set("eDeriv", 0, [][]float64{randVec(m.Ne)}); err != nil {
		tst.Errorf("FieldsDerivs.Set failed:\n%v", err)
		return
	}
	u, err := fd.Get("eDeriv", 0)
	if err != nil {
		tst.Errorf("FieldsDerivs.Get failed:\n%v", err)
		return
	}
	chk.IntAssert(len(u), 1)
	if err := fd.Set("xDeriv", 0, nil); err == nil {
		tst.Errorf("unregistered key must fail")
	}
}
