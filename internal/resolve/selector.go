package resolve

// Selector describes which session the caller wants, as a closed set of
// strategies. Exactly one variant applies per resolution call.
type Selector interface {
	isSelector()
}

// Explicit selects a session by its literal name, unchecked.
type Explicit struct {
	Name string
}

// Current selects the session currently open in the editor.
type Current struct{}

// LastGlobal selects the most recently saved session anywhere.
type LastGlobal struct{}

// LastForDirectory selects the most recently saved session whose owning
// directory matches Dir. Dir may be relative.
type LastForDirectory struct {
	Dir string
}

// LiteralOrDirectory selects by a single user-supplied string: an
// existing directory on disk means "last session for that directory",
// anything else is taken as a literal session name.
type LiteralOrDirectory struct {
	Value string
}

func (Explicit) isSelector()           {}
func (Current) isSelector()            {}
func (LastGlobal) isSelector()         {}
func (LastForDirectory) isSelector()   {}
func (LiteralOrDirectory) isSelector() {}

// NameOr returns explicit when non-empty, otherwise asks fallback to
// produce a name. It always yields a value or an error, never an empty
// success.
func NameOr(explicit string, fallback func() (string, error)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return fallback()
}
