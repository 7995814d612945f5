package tree

// Kind is the structural tag of a node.
type Kind string

// Kinds emitted by extractors.
const (
	KindProject   Kind = "project"
	KindPackage   Kind = "package"
	KindDirectory Kind = "directory"
	KindModule    Kind = "module"
	KindClass     Kind = "class"
	KindMethod    Kind = "method"
	KindFunction  Kind = "function"
	KindFile      Kind = "file"
	KindError     Kind = "error"
)

// Kinds lists every known kind in legend order.
var Kinds = []Kind{
	KindProject,
	KindPackage,
	KindDirectory,
	KindModule,
	KindClass,
	KindMethod,
	KindFunction,
	KindFile,
	KindError,
}

// Known reports whether k is one of the enumerated kinds.
func (k Kind) Known() bool {
	switch k {
	case KindProject, KindPackage, KindDirectory, KindModule, KindClass,
		KindMethod, KindFunction, KindFile, KindError:
		return true
	}
	return false
}

func (k Kind) String() string {
	if k == "" {
		return "unknown"
	}
	return string(k)
}
