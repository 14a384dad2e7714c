package widget

import "path/filepath"

// Walk computes the inheritance chain of the class declared in filePath.
//
// The chain lists parent class names, immediate parent first. A generic
// base ends the chain and is included as its last element; a parent whose
// file cannot be found ends it without being included. At most
// MaxInheritanceDepth names are returned, which also bounds cyclic
// inheritance.
func (e *Engine) Walk(filePath string) (InheritanceChain, TerminationReason) {
	return e.newResolution().walk(filepath.Clean(filePath))
}

func (r *resolution) walk(path string) (InheritanceChain, TerminationReason) {
	chain := InheritanceChain{}
	for depth := 0; ; depth++ {
		if depth >= MaxInheritanceDepth {
			return chain, ReasonDepthLimit
		}

		link, reason := r.parent(path)
		switch reason {
		case ReasonGenericRoot:
			return append(chain, link.Name), reason
		case reasonContinue:
			chain = append(chain, link.Name)
			path = link.File
		default:
			return chain, reason
		}
	}
}
