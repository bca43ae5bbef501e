package emulator

import (
	"fmt"

	"github.com/ezrec/compsim/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address int
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	address := fmt.Sprintf("%02d", err.Address)
	if err.LineNo == 0 {
		return f("address %v %v", address, err.Err)
	}
	return f("line %v address %v %v", fmt.Sprint(err.LineNo), address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
