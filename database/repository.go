package database

import (
	"errors"
	"strings"
)

// ErrUnsupportedCriterion is returned by the sorted queries for a criterion
// the record type does not know.
var ErrUnsupportedCriterion = errors.New("unsupported sort criterion")

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching needle literally anywhere
// in the column. Queries using it must declare ESCAPE '\'.
func containsPattern(needle string) string {
	return "%" + likeEscaper.Replace(needle) + "%"
}
