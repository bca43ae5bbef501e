package internal

import (
	"iter"
)

// Concat2 yields every pair of each sequence, in order.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Rows splits an indexed sequence into rows of width items, yielding the
// index of the first item of each row with the row contents.
func Rows[V any](seq iter.Seq2[int, V], width int) iter.Seq2[int, []V] {
	return func(yield func(int, []V) bool) {
		if width < 1 {
			width = 1
		}
		var row []V
		first := 0
		for n, v := range seq {
			if len(row) == 0 {
				first = n
			}
			row = append(row, v)
			if len(row) == width {
				if !yield(first, row) {
					return
				}
				row = nil
			}
		}
		if len(row) > 0 {
			yield(first, row)
		}
	}
}
