package common

// RelationshipType labels how a mentioned person relates to the subject
// whose biography mentioned them.
type RelationshipType string

const (
	RelParent      RelationshipType = "parent"
	RelChild       RelationshipType = "child"
	RelSpouse      RelationshipType = "spouse"
	RelSibling     RelationshipType = "sibling"
	RelGrandparent RelationshipType = "grandparent"
	RelGrandchild  RelationshipType = "grandchild"
	RelUncle       RelationshipType = "uncle"
	RelAunt        RelationshipType = "aunt"
	RelCousin      RelationshipType = "cousin"
	RelNiece       RelationshipType = "niece"
	RelNephew      RelationshipType = "nephew"
	RelOther       RelationshipType = "other"
)

// ParseRelationship maps arbitrary input to a known relationship,
// defaulting to other.
func ParseRelationship(s string) RelationshipType {
	switch r := RelationshipType(s); r {
	case RelParent, RelChild, RelSpouse, RelSibling, RelGrandparent,
		RelGrandchild, RelUncle, RelAunt, RelCousin, RelNiece, RelNephew:
		return r
	default:
		return RelOther
	}
}

// Inverse returns the relationship seen from the other side. The avuncular
// inversions are collapsed to a fixed gender (uncle always inverts to
// nephew, aunt to niece) rather than following the counterpart's gender.
func (r RelationshipType) Inverse() RelationshipType {
	switch r {
	case RelParent:
		return RelChild
	case RelChild:
		return RelParent
	case RelSpouse:
		return RelSpouse
	case RelSibling:
		return RelSibling
	case RelGrandparent:
		return RelGrandchild
	case RelGrandchild:
		return RelGrandparent
	case RelUncle:
		return RelNephew
	case RelAunt:
		return RelNiece
	case RelNiece:
		return RelAunt
	case RelNephew:
		return RelUncle
	case RelCousin:
		return RelCousin
	default:
		return RelOther
	}
}
