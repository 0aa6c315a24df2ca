package types

// ChangeKind is the kind of a filesystem change
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeUpdated
	ChangeDeleted
)

// String returns the string representation of the change kind
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Generates reports whether a change of this kind can trigger generation.
// Deletions never do.
func (k ChangeKind) Generates() bool {
	return k == ChangeAdded || k == ChangeUpdated
}

// FileChange is a single change reported by the file service
type FileChange struct {
	Path string
	Kind ChangeKind
}
