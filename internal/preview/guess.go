package preview

import "strings"

type roleHint struct {
	role  string
	match func(name string) bool
}

func contains(subs ...string) func(string) bool {
	return func(name string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

func both(a, b string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, a) && strings.Contains(name, b) }
}

// Checked in order; the first hit wins.
var roleHints = []roleHint{
	{"pointer", contains("normal", "arrow", "left_ptr")},
	{"help", contains("help", "question")},
	{"working", contains("work", "progress", "starting")},
	{"busy", contains("wait", "busy", "watch")},
	{"precision", contains("precision", "cross")},
	{"text", contains("text", "font")},
	{"hand", contains("hand", "pen")},
	{"unavailable", contains("unavail", "not")},
	{"vert", contains("vert")},
	{"horz", contains("hori", "horz")},
	{"dgn1", func(n string) bool { return both("dgn", "1")(n) || both("diag", "1")(n) }},
	{"dgn2", func(n string) bool { return both("dgn", "2")(n) || both("diag", "2")(n) }},
	{"move", contains("move")},
	{"alternate", contains("alt")},
	{"link", contains("link")},
	{"person", contains("person")},
	{"pin", contains("pin", "location")},
}

// GuessRole maps a cursor file name to the Windows role it most likely
// stands for, or "" when nothing matches.
func GuessRole(name string) string {
	name = strings.ToLower(name)
	for _, h := range roleHints {
		if h.match(name) {
			return h.role
		}
	}
	return ""
}
