package entities

type Severity struct {
	ID   uint64 `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Rank int    `db:"rank" json:"rank"`
}

type ResolverGroup struct {
	ID   uint64 `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Component struct {
	ID            uint64  `db:"id" json:"id"`
	ApplicationID uint64  `db:"application_id" json:"application_id"`
	Name          string  `db:"name" json:"name"`
	Kind          *string `db:"kind" json:"kind"`
}

// GroupINDRAD is the resolver group whose membership drives the binary
// dashboard classification.
const GroupINDRAD = "INDRA_D"
