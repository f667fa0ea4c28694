package window

import "strings"

// idReplacer folds the characters that are unsafe in layout keys.
var idReplacer = strings.NewReplacer(
	" ", "_", "\t", "_", "/", "_", "\\", "_", "~", "_", "!", "_",
	"@", "_", "#", "_", "$", "_", "%", "_", "^", "_", "&", "_",
	"*", "_", "(", "_", ")", "_", "-", "_", "+", "_", "=", "_",
	"\n", "_", "\r", "_",
)

// DeriveID turns a display name into a window identifier.
func DeriveID(name string) string {
	return idReplacer.Replace(name)
}
