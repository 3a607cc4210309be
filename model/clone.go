package model

// CrossRef redirects references to an original type inside a clone's merged
// body to a specific, previously established clone of that original. It is the
// mechanism that breaks dependency cycles between mutually referencing clones.
type CrossRef struct {
	Original string // Type whose references should be redirected
	Target   string // An established clone of Original
}

// CloneSpec declares a new type defined by duplicating one or more type bases
type CloneSpec struct {
	Name       string         // New type name
	Bases      []string       // Ordered type bases to clone from
	Args       []string       // Parameterization when cloning a templated base
	Additional []*Declaration // Declarations appended after all base members
	CrossRefs  []*CrossRef    // Cross-reference directives
	Location   *Location      // Location of the clone declaration in the source
}
