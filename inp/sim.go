// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Mu0 is the magnetic permeability of free space [H/m]
const Mu0 = 4e-7 * 3.14159265358979323846

// Data holds global data for simulations
type Data struct {
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/simpeg
}

// MeshData holds the tensor mesh definition (uniform cell widths)
type MeshData struct {
	Nx int     `json:"nx"` // number of cells along x
	Ny int     `json:"ny"` // number of cells along y
	Nz int     `json:"nz"` // number of cells along z
	Dx float64 `json:"dx"` // cell width along x
	Dy float64 `json:"dy"` // cell width along y
	Dz float64 `json:"dz"` // cell width along z
}

// TimeData holds the time discretization
type TimeData struct {
	T0     float64 `json:"t0"`     // initial time
	Dt     float64 `json:"dt"`     // time step size
	Nsteps int     `json:"nsteps"` // number of steps
}

// MatData holds the (uniform) material properties
type MatData struct {
	Sigma float64 `json:"sigma"` // electrical conductivity [S/m]
	Mur   float64 `json:"mur"`   // relative magnetic permeability
}

// SrcEntry holds one nonzero entry of a discrete source pattern
type SrcEntry struct {
	Eq  int     `json:"eq"`  // equation (edge or face) number
	Val float64 `json:"val"` // value
}

// SrcData holds the definition of one source
type SrcData struct {
	Name string     `json:"name"` // name of source
	Kind string     `json:"kind"` // kind of source; e.g. "rawvec"
	Func string     `json:"func"` // name of waveform in Functions
	Sm   []SrcEntry `json:"sm"`   // nonzero entries of the magnetic pattern (faces)
	Se   []SrcEntry `json:"se"`   // nonzero entries of the electric pattern (edges)
}

// Simulation holds all simulation input data
type Simulation struct {

	// input
	Data      Data       `json:"data"`      // global data
	Mesh      MeshData   `json:"mesh"`      // tensor mesh
	Time      TimeData   `json:"time"`      // time discretization
	Mat       MatData    `json:"material"`  // material properties
	Functions FuncsData  `json:"functions"` // waveforms
	Sources   []*SrcData `json:"sources"`   // sources

	// derived
	Key    string    // simulation key; e.g. based on the file name
	DirOut string    // output directory
	Times  []float64 // expanded times: Nsteps+1 values starting at T0
}

// ReadSim reads all simulation input data from a .sim JSON file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		err = chk.Err("ReadSim: cannot read simulation file %q", simfilepath)
		return
	}

	// decode
	o = new(Simulation)
	if err = json.Unmarshal(b, o); err != nil {
		err = chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
		return
	}

	// filename key and output directory
	fn := filepath.Base(os.ExpandEnv(simfilepath))
	o.Key = io.FnKey(fn)
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/simpeg/" + o.Key
	}

	// defaults
	if o.Mat.Mur == 0 {
		o.Mat.Mur = 1
	}

	// check input
	if o.Mesh.Nx < 1 || o.Mesh.Ny < 1 || o.Mesh.Nz < 1 {
		err = chk.Err("ReadSim: mesh needs at least one cell along each axis: nx=%d ny=%d nz=%d", o.Mesh.Nx, o.Mesh.Ny, o.Mesh.Nz)
		return
	}
	if o.Mesh.Dx <= 0 || o.Mesh.Dy <= 0 || o.Mesh.Dz <= 0 {
		err = chk.Err("ReadSim: cell widths must be positive: dx=%v dy=%v dz=%v", o.Mesh.Dx, o.Mesh.Dy, o.Mesh.Dz)
		return
	}
	if o.Time.Dt <= 0 || o.Time.Nsteps < 1 {
		err = chk.Err("ReadSim: time data is invalid: dt=%v nsteps=%d", o.Time.Dt, o.Time.Nsteps)
		return
	}
	if o.Mat.Sigma <= 0 {
		err = chk.Err("ReadSim: conductivity must be positive: sigma=%v", o.Mat.Sigma)
		return
	}
	for _, src := range o.Sources {
		if _, e := o.Functions.Get(src.Func); e != nil {
			err = chk.Err("ReadSim: source %q refers to unknown waveform %q", src.Name, src.Func)
			return
		}
	}

	// expand times
	tf := o.Time.T0 + o.Time.Dt*float64(o.Time.Nsteps)
	o.Times = utl.LinSpace(o.Time.T0, tf, o.Time.Nsteps+1)
	return
}

// model vectors /////////////////////////////////////////////////////////////////////////////////

// CellWidths returns the cell-width arrays of the tensor mesh
func (o *Simulation) CellWidths() (hx, hy, hz []float64) {
	hx = make([]float64, o.Mesh.Nx)
	hy = make([]float64, o.Mesh.Ny)
	hz = make([]float64, o.Mesh.Nz)
	for i := range hx {
		hx[i] = o.Mesh.Dx
	}
	for i := range hy {
		hy[i] = o.Mesh.Dy
	}
	for i := range hz {
		hz[i] = o.Mesh.Dz
	}
	return
}

// SigmaVec returns the per-cell conductivity model vector
func (o *Simulation) SigmaVec(nc int) (sigma []float64) {
	sigma = make([]float64, nc)
	for i := range sigma {
		sigma[i] = o.Mat.Sigma
	}
	return
}

// MuiVec returns the per-cell inverse permeability vector
func (o *Simulation) MuiVec(nc int) (mui []float64) {
	mui = make([]float64, nc)
	for i := range mui {
		mui[i] = 1.0 / (o.Mat.Mur * Mu0)
	}
	return
}
