// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/la"
)

// EdgeCurl assembles the discrete curl operator mapping edge fields to face
// fields (Nf x Ne). Each row holds the signed circulation of the four edges
// bounding one face, scaled by edge length over face area:
//
//	(curl E)_x = dEz/dy - dEy/dz
//	(curl E)_y = dEx/dz - dEz/dx
//	(curl E)_z = dEy/dx - dEx/dy
func (o *TensorMesh) EdgeCurl() *la.CCMatrix {

	var T la.Triplet
	T.Init(o.Nf, o.Ne, 4*o.Nf)

	// x-faces: circulation in the (y,z) plane
	for k := 0; k < o.Nz; k++ {
		for j := 0; j < o.Ny; j++ {
			for i := 0; i <= o.Nx; i++ {
				f := o.FxIndex(i, j, k)
				area := o.Hy[j] * o.Hz[k]
				T.Put(f, o.EyIndex(i, j, k), o.Hy[j]/area)
				T.Put(f, o.EzIndex(i, j+1, k), o.Hz[k]/area)
				T.Put(f, o.EyIndex(i, j, k+1), -o.Hy[j]/area)
				T.Put(f, o.EzIndex(i, j, k), -o.Hz[k]/area)
			}
		}
	}

	// y-faces: circulation in the (z,x) plane
	for k := 0; k < o.Nz; k++ {
		for j := 0; j <= o.Ny; j++ {
			for i := 0; i < o.Nx; i++ {
				f := o.FyIndex(i, j, k)
				area := o.Hx[i] * o.Hz[k]
				T.Put(f, o.EzIndex(i, j, k), o.Hz[k]/area)
				T.Put(f, o.ExIndex(i, j, k+1), o.Hx[i]/area)
				T.Put(f, o.EzIndex(i+1, j, k), -o.Hz[k]/area)
				T.Put(f, o.ExIndex(i, j, k), -o.Hx[i]/area)
			}
		}
	}

	// z-faces: circulation in the (x,y) plane
	for k := 0; k <= o.Nz; k++ {
		for j := 0; j < o.Ny; j++ {
			for i := 0; i < o.Nx; i++ {
				f := o.FzIndex(i, j, k)
				area := o.Hx[i] * o.Hy[j]
				T.Put(f, o.EyIndex(i+1, j, k), o.Hy[j]/area)
				T.Put(f, o.ExIndex(i, j, k), o.Hx[i]/area)
				T.Put(f, o.EyIndex(i, j, k), -o.Hy[j]/area)
				T.Put(f, o.ExIndex(i, j+1, k), -o.Hx[i]/area)
			}
		}
	}

	return T.ToMatrix(nil)
}
