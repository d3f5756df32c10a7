// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements a 3D tensor (rectilinear) mesh with the discrete
// entities and geometric quantities needed by the electromagnetic operators:
// cells, edges and faces are numbered x-components first, then y, then z,
// with the x index varying fastest within each block.
package msh

import (
	"github.com/cpmech/gosl/chk"
)

// TensorMesh holds a 3D tensor mesh defined by the cell widths along each axis
type TensorMesh struct {

	// input
	Hx []float64 // cell widths along x
	Hy []float64 // cell widths along y
	Hz []float64 // cell widths along z

	// cell counts
	Nx int // number of cells along x
	Ny int // number of cells along y
	Nz int // number of cells along z
	Nc int // total number of cells

	// edge counts
	Nex int // number of x-edges
	Ney int // number of y-edges
	Nez int // number of z-edges
	Ne  int // total number of edges

	// face counts
	Nfx int // number of x-faces (normal along x)
	Nfy int // number of y-faces
	Nfz int // number of z-faces
	Nf  int // total number of faces

	// geometry
	Vols []float64 // [Nc] cell volumes

	// derived: cells adjacent to each edge/face with mass-matrix weights
	edgeCells [][]int     // [Ne] cell ids touching each edge
	edgeW     [][]float64 // [Ne] weight vol/4 per adjacent cell
	faceCells [][]int     // [Nf] cell ids touching each face
	faceW     [][]float64 // [Nf] weight vol/2 per adjacent cell
}

// NewTensorMesh creates a new tensor mesh from the cell-width arrays
func NewTensorMesh(hx, hy, hz []float64) (o *TensorMesh, err error) {

	// check input
	if len(hx) < 1 || len(hy) < 1 || len(hz) < 1 {
		err = chk.Err("tensor mesh needs at least one cell along each axis: got nx=%d ny=%d nz=%d", len(hx), len(hy), len(hz))
		return
	}
	for _, h := range [][]float64{hx, hy, hz} {
		for _, v := range h {
			if v <= 0 {
				err = chk.Err("cell widths must be positive: got %v", v)
				return
			}
		}
	}

	// counts
	o = new(TensorMesh)
	o.Hx, o.Hy, o.Hz = hx, hy, hz
	o.Nx, o.Ny, o.Nz = len(hx), len(hy), len(hz)
	o.Nc = o.Nx * o.Ny * o.Nz
	o.Nex = o.Nx * (o.Ny + 1) * (o.Nz + 1)
	o.Ney = (o.Nx + 1) * o.Ny * (o.Nz + 1)
	o.Nez = (o.Nx + 1) * (o.Ny + 1) * o.Nz
	o.Ne = o.Nex + o.Ney + o.Nez
	o.Nfx = (o.Nx + 1) * o.Ny * o.Nz
	o.Nfy = o.Nx * (o.Ny + 1) * o.Nz
	o.Nfz = o.Nx * o.Ny * (o.Nz + 1)
	o.Nf = o.Nfx + o.Nfy + o.Nfz

	// volumes
	o.Vols = make([]float64, o.Nc)
	for k := 0; k < o.Nz; k++ {
		for j := 0; j < o.Ny; j++ {
			for i := 0; i < o.Nx; i++ {
				o.Vols[o.CellIndex(i, j, k)] = hx[i] * hy[j] * hz[k]
			}
		}
	}

	// adjacency with weights
	o.buildEdgeCells()
	o.buildFaceCells()
	return
}

// indexing //////////////////////////////////////////////////////////////////////////////////////

// CellIndex returns the global id of cell (i,j,k)
func (o *TensorMesh) CellIndex(i, j, k int) int {
	return i + j*o.Nx + k*o.Nx*o.Ny
}

// ExIndex returns the global id of the x-edge at x-cell i, y-node j, z-node k
func (o *TensorMesh) ExIndex(i, j, k int) int {
	return i + j*o.Nx + k*o.Nx*(o.Ny+1)
}

// EyIndex returns the global id of the y-edge at x-node i, y-cell j, z-node k
func (o *TensorMesh) EyIndex(i, j, k int) int {
	return o.Nex + i + j*(o.Nx+1) + k*(o.Nx+1)*o.Ny
}

// EzIndex returns the global id of the z-edge at x-node i, y-node j, z-cell k
func (o *TensorMesh) EzIndex(i, j, k int) int {
	return o.Nex + o.Ney + i + j*(o.Nx+1) + k*(o.Nx+1)*(o.Ny+1)
}

// FxIndex returns the global id of the x-face at x-node i, y-cell j, z-cell k
func (o *TensorMesh) FxIndex(i, j, k int) int {
	return i + j*(o.Nx+1) + k*(o.Nx+1)*o.Ny
}

// FyIndex returns the global id of the y-face at x-cell i, y-node j, z-cell k
func (o *TensorMesh) FyIndex(i, j, k int) int {
	return o.Nfx + i + j*o.Nx + k*o.Nx*(o.Ny+1)
}

// FzIndex returns the global id of the z-face at x-cell i, y-cell j, z-node k
func (o *TensorMesh) FzIndex(i, j, k int) int {
	return o.Nfx + o.Nfy + i + j*o.Nx + k*o.Nx*o.Ny
}

// adjacency /////////////////////////////////////////////////////////////////////////////////////

// EdgeCells returns the cells adjacent to edge e and the corresponding
// mass-matrix weights (vol/4 each); the diagonal of the conductivity edge
// mass matrix is  Me[e,e] = Σ w[n]・σ[cells[n]]
func (o *TensorMesh) EdgeCells(e int) (cells []int, w []float64) {
	return o.edgeCells[e], o.edgeW[e]
}

// FaceCells returns the cells adjacent to face f and the corresponding
// mass-matrix weights (vol/2 each)
func (o *TensorMesh) FaceCells(f int) (cells []int, w []float64) {
	return o.faceCells[f], o.faceW[f]
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////

// buildEdgeCells fills the edge-to-cell adjacency. Each edge touches up to
// four cells; its conductivity mass-matrix weight from each one is vol/4
func (o *TensorMesh) buildEdgeCells() {
	o.edgeCells = make([][]int, o.Ne)
	o.edgeW = make([][]float64, o.Ne)
	add := func(e, i, j, k int) {
		if i < 0 || i >= o.Nx || j < 0 || j >= o.Ny || k < 0 || k >= o.Nz {
			return
		}
		c := o.CellIndex(i, j, k)
		o.edgeCells[e] = append(o.edgeCells[e], c)
		o.edgeW[e] = append(o.edgeW[e], o.Vols[c]/4.0)
	}
	for k := 0; k <= o.Nz; k++ {
		for j := 0; j <= o.Ny; j++ {
			for i := 0; i < o.Nx; i++ {
				e := o.ExIndex(i, j, k)
				add(e, i, j-1, k-1)
				add(e, i, j, k-1)
				add(e, i, j-1, k)
				add(e, i, j, k)
			}
		}
	}
	for k := 0; k <= o.Nz; k++ {
		for j := 0; j < o.Ny; j++ {
			for i := 0; i <= o.Nx; i++ {
				e := o.EyIndex(i, j, k)
				add(e, i-1, j, k-1)
				add(e, i, j, k-1)
				add(e, i-1, j, k)
				add(e, i, j, k)
			}
		}
	}
	for k := 0; k < o.Nz; k++ {
		for j := 0; j <= o.Ny; j++ {
			for i := 0; i <= o.Nx; i++ {
				e := o.EzIndex(i, j, k)
				add(e, i-1, j-1, k)
				add(e, i, j-1, k)
				add(e, i-1, j, k)
				add(e, i, j, k)
			}
		}
	}
}

// buildFaceCells fills the face-to-cell adjacency. Each face touches up to
// two cells; its permeability mass-matrix weight from each one is vol/2
func (o *TensorMesh) buildFaceCells() {
	o.faceCells = make([][]int, o.Nf)
	o.faceW = make([][]float64, o.Nf)
	add := func(f, i, j, k int) {
		if i < 0 || i >= o.Nx || j < 0 || j >= o.Ny || k < 0 || k >= o.Nz {
			return
		}
		c := o.CellIndex(i, j, k)
		o.faceCells[f] = append(o.faceCells[f], c)
		o.faceW[f] = append(o.faceW[f], o.Vols[c]/2.0)
	}
	for k := 0; k < o.Nz; k++ {
		for j := 0; j < o.Ny; j++ {
			for i := 0; i <= o.Nx; i++ {
				f := o.FxIndex(i, j, k)
				add(f, i-1, j, k)
				add(f, i, j, k)
			}
		}
	}
	for k := 0; k < o.Nz; k++ {
		for j := 0; j <= o.Ny; j++ {
			for i := 0; i < o.Nx; i++ {
				f := o.FyIndex(i, j, k)
				add(f, i, j-1, k)
				add(f, i, j, k)
			}
		}
	}
	for k := 0; k <= o.Nz; k++ {
		for j := 0; j < o.Ny; j++ {
			for i := 0; i < o.Nx; i++ {
				f := o.FzIndex(i, j, k)
				add(f, i, j, k-1)
				add(f, i, j, k)
			}
		}
	}
}
