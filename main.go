// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// simpeg derives time-domain electromagnetic fields from a stored solution
// history. It reads a .sim file, builds the tensor mesh and the discrete
// operators, fills a flux-density history with a decaying profile and reports
// the derived electric field at every step together with one adjoint
// sensitivity propagation.
package main

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/plt"

	"github.com/wassname/simpeg/inp"
	"github.com/wassname/simpeg/msh"
	"github.com/wassname/simpeg/tdem"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/demo", ".sim", true)
	verbose := io.ArgToBool(1, false)

	// simulation data
	sim, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot read simulation file:\n%v", err)
	}
	io.Pf("%s\n", sim.Data.Desc)

	// mesh and problem
	hx, hy, hz := sim.CellWidths()
	m, err := msh.NewTensorMesh(hx, hy, hz)
	if err != nil {
		chk.Panic("cannot build mesh:\n%v", err)
	}
	prb, err := tdem.NewProblem(m, sim.SigmaVec(m.Nc), sim.MuiVec(m.Nc), sim.Times)
	if err != nil {
		chk.Panic("cannot build problem:\n%v", err)
	}

	// sources
	var srcs []tdem.Source
	for _, sd := range sim.Sources {
		wave, err := sim.Functions.Get(sd.Func)
		if err != nil {
			chk.Panic("cannot resolve waveform of source %q:\n%v", sd.Name, err)
		}
		var sm, se []float64
		if len(sd.Sm) > 0 {
			sm = make([]float64, m.Nf)
			for _, p := range sd.Sm {
				sm[p.Eq] = p.Val
			}
		}
		if len(sd.Se) > 0 {
			se = make([]float64, m.Ne)
			for _, p := range sd.Se {
				se[p.Eq] = p.Val
			}
		}
		src, err := tdem.NewSrcRawVec(sd.Name, wave, sm, se)
		if err != nil {
			chk.Panic("cannot build source %q:\n%v", sd.Name, err)
		}
		srcs = append(srcs, src)
	}
	if len(srcs) == 0 {
		chk.Panic("at least one source is required")
	}

	// field container with a decaying flux-density history. the time constant
	// is the diffusion time of one cell
	f := tdem.NewFieldsB(prb, srcs)
	tau := inp.Mu0 * sim.Mat.Sigma * sim.Mesh.Dx * sim.Mesh.Dx
	for tInd, t := range prb.Times {
		u := make([][]float64, len(srcs))
		a := 1e-3 * math.Exp(-(t-prb.Times[0])/tau)
		for i := range srcs {
			u[i] = make([]float64, m.Nf)
			la.VecFill(u[i], a)
		}
		if err := f.SetSolution(tInd, u); err != nil {
			chk.Panic("cannot store solution:\n%v", err)
		}
	}

	// derive e at every step
	T := prb.Times
	En := make([]float64, len(T))
	io.Pf("%6s%14s%14s%14s\n", "step", "t", "|b|", "|e|")
	for tInd, t := range T {
		b, err := f.Field(srcs, "b", tInd)
		if err != nil {
			chk.Panic("cannot get b:\n%v", err)
		}
		e, err := f.Field(srcs, "e", tInd)
		if err != nil {
			chk.Panic("cannot derive e:\n%v", err)
		}
		En[tInd] = la.VecNorm(e[0])
		io.Pf("%6d%14.6e%14.6e%14.6e\n", tInd, t, la.VecNorm(b[0]), En[tInd])
	}

	// one adjoint propagation: sensitivities of the last electric field
	last := len(T) - 1
	e, err := f.Field(srcs, "e", last)
	if err != nil {
		chk.Panic("cannot derive e:\n%v", err)
	}
	du, dm, err := f.EDerivAdjoint(last, srcs[0], e[0])
	if err != nil {
		chk.Panic("adjoint propagation failed:\n%v", err)
	}
	io.Pf("\nadjoint: |d/du| = %.6e  |d/dm| = %.6e\n", la.VecNorm(du), la.VecNorm(dm))

	// plots
	if verbose {
		sim.Functions.PlotAll(&inp.PlotFdata{Ti: T[0], Tf: T[last], Np: 101}, sim.DirOut, sim.Key)
		plt.Reset(false, nil)
		plt.Plot(T, En, nil)
		plt.Gll("t", "|e|", nil)
		plt.Save(sim.DirOut, "decay-"+sim.Key)
	}
}
