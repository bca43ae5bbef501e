package io

import (
	"errors"

	"github.com/ezrec/compsim/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrMemoryFull = errors.New(f("memory full"))
)
