// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"
)

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. entity counts on a 2x2x2 mesh")

	h := []float64{25, 25}
	m, err := NewTensorMesh(h, h, h)
	if err != nil {
		tst.Errorf("NewTensorMesh failed:\n%v", err)
		return
	}

	chk.IntAssert(m.Nc, 8)
	chk.IntAssert(m.Nex, 18)
	chk.IntAssert(m.Ney, 18)
	chk.IntAssert(m.Nez, 18)
	chk.IntAssert(m.Ne, 54)
	chk.IntAssert(m.Nfx, 12)
	chk.IntAssert(m.Nfy, 12)
	chk.IntAssert(m.Nfz, 12)
	chk.IntAssert(m.Nf, 36)

	for _, v := range m.Vols {
		chk.Scalar(tst, "vol", 1e-17, v, 25*25*25)
	}

	// the sum of weights over the 12 edges of each cell must equal 3*vol
	sumE := make([]float64, m.Nc)
	for e := 0; e < m.Ne; e++ {
		cells, w := m.EdgeCells(e)
		for n, c := range cells {
			sumE[c] += w[n]
		}
	}
	for c := 0; c < m.Nc; c++ {
		chk.Scalar(tst, io.Sf("edge weights of cell %d", c), 1e-12, sumE[c], 3*m.Vols[c])
	}

	// the sum of weights over the 6 faces of each cell must equal 3*vol
	sumF := make([]float64, m.Nc)
	for f := 0; f < m.Nf; f++ {
		cells, w := m.FaceCells(f)
		for n, c := range cells {
			sumF[c] += w[n]
		}
	}
	for c := 0; c < m.Nc; c++ {
		chk.Scalar(tst, io.Sf("face weights of cell %d", c), 1e-12, sumF[c], 3*m.Vols[c])
	}
}

func Test_mesh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh02. curl of a gradient vanishes")

	m, err := NewTensorMesh([]float64{1, 2, 1.5}, []float64{2, 1}, []float64{1, 3})
	if err != nil {
		tst.Errorf("NewTensorMesh failed:\n%v", err)
		return
	}
	C := m.EdgeCurl()

	// random nodal potential
	nn := (m.Nx + 1) * (m.Ny + 1) * (m.Nz + 1)
	node := func(i, j, k int) int { return i + j*(m.Nx+1) + k*(m.Nx+1)*(m.Ny+1) }
	rnd.Init(1234)
	phi := make([]float64, nn)
	for n := 0; n < nn; n++ {
		phi[n] = rnd.Float64(-1, 1)
	}

	// discrete gradient of phi on edges
	g := make([]float64, m.Ne)
	for k := 0; k <= m.Nz; k++ {
		for j := 0; j <= m.Ny; j++ {
			for i := 0; i < m.Nx; i++ {
				g[m.ExIndex(i, j, k)] = (phi[node(i+1, j, k)] - phi[node(i, j, k)]) / m.Hx[i]
			}
		}
	}
	for k := 0; k <= m.Nz; k++ {
		for j := 0; j < m.Ny; j++ {
			for i := 0; i <= m.Nx; i++ {
				g[m.EyIndex(i, j, k)] = (phi[node(i, j+1, k)] - phi[node(i, j, k)]) / m.Hy[j]
			}
		}
	}
	for k := 0; k < m.Nz; k++ {
		for j := 0; j <= m.Ny; j++ {
			for i := 0; i <= m.Nx; i++ {
				g[m.EzIndex(i, j, k)] = (phi[node(i, j, k+1)] - phi[node(i, j, k)]) / m.Hz[k]
			}
		}
	}

	// curl(grad(phi)) == 0
	cg := make([]float64, m.Nf)
	la.SpMatVecMul(cg, 1, C, g)
	for f := 0; f < m.Nf; f++ {
		chk.Scalar(tst, io.Sf("curl(grad phi)[%d]", f), 1e-12, cg[f], 0)
	}

	// curl of a uniform edge field also vanishes
	u := make([]float64, m.Ne)
	la.VecFill(u, 0.5)
	cu := make([]float64, m.Nf)
	la.SpMatVecMul(cu, 1, C, u)
	for f := 0; f < m.Nf; f++ {
		chk.Scalar(tst, io.Sf("curl(const)[%d]", f), 1e-12, cu[f], 0)
	}
}

func Test_mesh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh03. invalid input")

	_, err := NewTensorMesh(nil, []float64{1}, []float64{1})
	if err == nil {
		tst.Errorf("empty width array must fail")
		return
	}
	_, err = NewTensorMesh([]float64{1, -1}, []float64{1}, []float64{1})
	if err == nil {
		tst.Errorf("negative width must fail")
	}
}
