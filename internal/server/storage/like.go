package storage

import "strings"

// LikeEscape is the escape character used by LikePattern.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern builds a "contains" pattern for LIKE/ILIKE from user input.
// Wildcards in search are matched literally; the query must declare
// ESCAPE '\'. Input is lowercased for use against LOWER(column).
func LikePattern(search string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(search)) + "%"
}
