package repo

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes the LIKE wildcards of s so that it matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
