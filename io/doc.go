// Package io connects the accumulator computer to the outside world: the
// line based terminal used by READ and WRITE, and the loaders that fill
// memory from a program file or from keyboard entry.
package io
