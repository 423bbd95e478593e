package onshape

import "fmt"

// RefType selects the addressing mode for a document reference.
type RefType string

const (
	// RefWorkspace addresses the live, editable state of a document.
	RefWorkspace RefType = "w"
	// RefVersion addresses an immutable named version.
	RefVersion RefType = "v"
	// RefMicroversion addresses a single immutable revision.
	RefMicroversion RefType = "m"
)

// DocContext bundles the document ID with a workspace/version/microversion
// reference. All API paths that address content inside a document are built
// from one of these.
type DocContext struct {
	DocumentID string
	RefType    RefType
	RefID      string
}

// NewWorkspaceContext returns a mutable context addressing a workspace.
func NewWorkspaceContext(documentID, workspaceID string) DocContext {
	return DocContext{DocumentID: documentID, RefType: RefWorkspace, RefID: workspaceID}
}

// NewVersionContext returns an immutable context addressing a version.
func NewVersionContext(documentID, versionID string) DocContext {
	return DocContext{DocumentID: documentID, RefType: RefVersion, RefID: versionID}
}

// IsMutable reports whether destructive operations (element deletion,
// feature suppression changes, drawing creation) are permitted. Only
// workspace references are mutable.
func (c DocContext) IsMutable() bool {
	return c.RefType == RefWorkspace
}

// Path builds the document-scoped API path segment with an optional suffix,
// e.g. Path("/elements") -> "/d/{did}/w/{wid}/elements".
func (c DocContext) Path(suffix string) string {
	return fmt.Sprintf("/d/%s/%s/%s%s", c.DocumentID, c.RefType, c.RefID, suffix)
}
