// Copyright 2026 The Simpeg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tdem

import (
	"github.com/cpmech/gosl/chk"
)

// TimeStore is an indexed container mapping (field key, time index) to the
// per-source column vectors of that field. Each stored matrix has shape
// (size(key), nSources) and is held column-wise: u[i] is the vector of
// source i. Keys are registered once at construction time; reads of a time
// index that has not been written fail loudly.
type TimeStore struct {
	nt    int                      // number of time indices
	sizes map[string]int           // key => number of degrees of freedom
	data  map[string][][][]float64 // key => [nt][nSrc][size]
}

// NewTimeStore creates a new store covering nt time indices
func NewTimeStore(nt int) *TimeStore {
	return &TimeStore{
		nt:    nt,
		sizes: make(map[string]int),
		data:  make(map[string][][][]float64),
	}
}

// Register declares a field key and the size of its discrete space
func (o *TimeStore) Register(key string, size int) {
	o.sizes[key] = size
	o.data[key] = make([][][]float64, o.nt)
}

// Known tells whether key has been registered
func (o *TimeStore) Known(key string) bool {
	_, ok := o.sizes[key]
	return ok
}

// Size returns the number of degrees of freedom of key
func (o *TimeStore) Size(key string) int {
	return o.sizes[key]
}

// Ntimes returns the number of time indices covered by this store
func (o *TimeStore) Ntimes() int {
	return o.nt
}

// Set stores the column vectors of key at time index tInd. The engine never
// mutates stored vectors afterwards; ownership passes to the store.
func (o *TimeStore) Set(key string, tInd int, u [][]float64) (err error) {
	size, ok := o.sizes[key]
	if !ok {
		return chk.Err("cannot store unregistered field %q", key)
	}
	if tInd < 0 || tInd >= o.nt {
		return chk.Err("time index %d is out of range [0,%d) for field %q", tInd, o.nt, key)
	}
	for i, col := range u {
		if len(col) != size {
			return chk.Err("column %d of field %q has %d entries; %d are required", i, key, len(col), size)
		}
	}
	o.data[key][tInd] = u
	return
}

// Get returns the column vectors of key at time index tInd
func (o *TimeStore) Get(key string, tInd int) (u [][]float64, err error) {
	if _, ok := o.sizes[key]; !ok {
		err = chk.Err("field %q is not registered in this store", key)
		return
	}
	if tInd < 0 || tInd >= o.nt {
		err = chk.Err("time index %d is out of range [0,%d) for field %q", tInd, o.nt, key)
		return
	}
	u = o.data[key][tInd]
	if u == nil {
		err = chk.Err("field %q has not been stored at time index %d yet", key, tInd)
	}
	return
}
