package specification

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscaper makes user input literal inside a LIKE/ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NoteSearchQuery filters notes by title or content.
// Using ILIKE for Postgres (case insensitive); the query is matched
// literally, its pattern metacharacters carry no meaning.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(s.Query) + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}
