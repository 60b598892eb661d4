package app

import (
	"github.com/smooks-go/cdrl/internal/registry"
	"github.com/smooks-go/cdrl/modules/trace"
)

// coreModules is the definitive list of all modules compiled into the
// cdrl binary.
var coreModules = []registry.Module{
	&trace.Module{},
}
