// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// PlotFdata holds information to plot waveforms
type PlotFdata struct {
	Ti   float64  `json:"ti"`   // initial time
	Tf   float64  `json:"tf"`   // final time
	Np   int      `json:"np"`   // number of points
	Skip []string `json:"skip"` // skip waveforms
}

// FuncData holds a waveform definition
type FuncData struct {
	Name string     `json:"name"` // name of waveform. ex: unit, rampoff
	Type string     `json:"type"` // type of function. ex: cte, rmp
	Prms dbf.Params `json:"prms"` // parameters
}

// FuncsData holds all waveforms
type FuncsData []*FuncData

// Get returns waveform by name
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "zero" || name == "none" {
		fcn = &dbf.Zero
		return
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err = dbf.New(f.Type, f.Prms)
			if err != nil {
				err = chk.Err("cannot get waveform named %q because of the following error:\n%v", name, err)
			}
			return
		}
	}
	err = chk.Err("cannot find waveform named %q\n", name)
	return
}

// PlotAll plots all waveforms
func (o FuncsData) PlotAll(pd *PlotFdata, dirout, fnkey string) {
	for _, f := range o {
		if utl.StrIndexSmall(pd.Skip, f.Name) >= 0 {
			continue
		}
		ff, err := o.Get(f.Name)
		if err != nil {
			chk.Panic("%v", err)
		}
		if ff != nil {
			T := utl.LinSpace(pd.Ti, pd.Tf, pd.Np)
			W := make([]float64, len(T))
			for i, t := range T {
				W[i] = ff.F(t, nil)
			}
			plt.Reset(false, nil)
			plt.Plot(T, W, nil)
			plt.Gll("t", "w(t)", nil)
			plt.Save(dirout, io.Sf("waveform-%s-%s", fnkey, f.Name))
		}
	}
}

// String prints one waveform
func (o FuncData) String() string {
	return io.Sf("    {\"name\":%q, \"type\":%q}", o.Name, o.Type)
}
