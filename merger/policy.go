package merger

// FriendPolicy controls how friend declarations of a base are carried into a clone
type FriendPolicy string

const (
	// FriendDrop excludes friend declarations from the merged set
	FriendDrop FriendPolicy = "drop"
	// FriendDeclarationOnly copies non-template friends as declaration-only
	// stubs and template friends with full capability
	FriendDeclarationOnly FriendPolicy = "declarationOnly"
)

// Policy selects between the variant rule sets of the construct
type Policy struct {
	AllowSubstitution  bool         // An additional declaration may replace a base declaration with the same signature
	Friends            FriendPolicy // Friend duplication rule
	SingleBaseOnly     bool         // Restrict clones to a single base
	MergeAttributes    bool         // Unify structurally identical attributes across bases
	AllowPrimitiveBase bool         // Admit primitive bases as empty member sets
}

// DefaultPolicy returns the default rule set
func DefaultPolicy() *Policy {
	return &Policy{
		AllowSubstitution:  false,
		Friends:            FriendDeclarationOnly,
		SingleBaseOnly:     false,
		MergeAttributes:    true,
		AllowPrimitiveBase: false,
	}
}
