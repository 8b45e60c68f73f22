// Package sample provides dataset access and random
// minibatch drawing for autoencoder training.
package sample

import "github.com/unixpickle/anyvec"

// A List is a fixed-size dataset of equally-long feature
// rows.
//
// A List is never mutated by this module, so one List
// may back any number of training runs.
type List interface {
	// Len returns the number of rows.
	Len() int

	// At returns the row at an index.
	At(i int) anyvec.Vector
}

// A SliceList is a List backed by a slice of rows.
type SliceList []anyvec.Vector

// NewSliceList converts raw float64 rows to the
// creator's working numeric precision.
func NewSliceList(c anyvec.Creator, rows [][]float64) SliceList {
	res := make(SliceList, len(rows))
	for i, row := range rows {
		res[i] = c.MakeVectorData(c.MakeNumericList(row))
	}
	return res
}

// Len returns the number of rows.
func (s SliceList) Len() int {
	return len(s)
}

// At returns the row at the index.
func (s SliceList) At(i int) anyvec.Vector {
	return s[i]
}

// Pack concatenates the rows of a list into one packed
// batch vector, row after row.
func Pack(c anyvec.Creator, l List) anyvec.Vector {
	if l.Len() == 0 {
		return c.MakeVector(0)
	}
	rows := make([]anyvec.Vector, l.Len())
	for i := range rows {
		rows[i] = l.At(i)
	}
	return c.Concat(rows...)
}
