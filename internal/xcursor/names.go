package xcursor

// Names is the X11 cursor name of a Windows role and the aliases linked to it.
type Names struct {
	Primary string
	Aliases []string
}

type roleNames struct {
	role string
	Names
}

// Primaries are X11 cursorfont names where one exists. Hashed aliases are the
// names some toolkits look up directly.
var roleTable = [...]roleNames{
	{"pointer", Names{"left_ptr", []string{"default", "arrow", "top_left_arrow"}}},
	{"help", Names{"help", []string{"question_arrow", "whats_this", "d9ce0ab605698f320427677b458ad60b"}}},
	{"working", Names{"left_ptr_watch", []string{
		"progress", "half-busy",
		"00000000000000020006000e7e9ffc3f", "3ecb610c1bf2410f44200f48c40d3599", "08e8e1c95fe2fc01f976f1e063a24ccd",
	}}},
	{"busy", Names{"watch", []string{"wait", "clock", "0426c94ea35c87780ff01dc239897213"}}},
	{"precision", Names{"crosshair", []string{"cross", "cross_reverse", "tcross", "diamond_cross"}}},
	{"text", Names{"xterm", []string{"ibeam", "text"}}},
	{"hand", Names{"pencil", []string{"handwriting"}}},
	{"unavailable", Names{"not-allowed", []string{
		"no-drop", "crossed_circle", "forbidden", "03b6e0fcb3499374a867c041f52298f0", "circle",
	}}},
	{"vert", Names{"sb_v_double_arrow", []string{
		"ns-resize", "size_ver", "v_double_arrow", "row-resize", "n-resize", "s-resize",
		"00008160000006810000408080010102", "split_v", "top_side", "bottom_side",
	}}},
	{"horz", Names{"sb_h_double_arrow", []string{
		"ew-resize", "size_hor", "h_double_arrow", "col-resize", "e-resize", "w-resize",
		"028006030e0e7ebffc7f7070c0600140", "split_h", "left_side", "right_side",
	}}},
	{"dgn1", Names{"bd_double_arrow", []string{
		"nwse-resize", "size_fdiag", "nw-resize", "se-resize",
		"c7088f0f3e6c8088236ef8e1e3e70000", "top_left_corner", "bottom_right_corner",
	}}},
	{"dgn2", Names{"fd_double_arrow", []string{
		"nesw-resize", "size_bdiag", "ne-resize", "sw-resize",
		"fcf1c3c7cd4491d801f1e1c78f100000", "top_right_corner", "bottom_left_corner",
	}}},
	{"move", Names{"fleur", []string{
		"move", "size_all", "all-scroll", "grabbing",
		"4498f0e0c1937ffe01fd06f973665830", "9081237383d90e509aa00f00170e968f",
	}}},
	{"alternate", Names{"center_ptr", []string{"up-arrow", "up_arrow"}}},
	{"link", Names{"hand2", []string{
		"hand", "hand1", "pointer", "pointing_hand", "openhand",
		"e29285e634086352946a0e7090d73106", "9d800788f1b08800ae810202380a0822",
	}}},
	{"person", Names{"person", nil}},
	{"pin", Names{"pin", nil}},
}

// Lookup returns the names of a Windows role. Unknown roles are used as the
// primary name with no aliases.
func Lookup(role string) Names {
	for _, r := range roleTable {
		if r.role == role {
			return Names{Primary: r.Primary, Aliases: append([]string(nil), r.Aliases...)}
		}
	}
	return Names{Primary: role}
}

// Known reports whether role is in the name table.
func Known(role string) bool {
	for _, r := range roleTable {
		if r.role == role {
			return true
		}
	}
	return false
}

// Roles lists the known Windows roles in table order.
func Roles() []string {
	out := make([]string, len(roleTable))
	for i, r := range roleTable {
		out[i] = r.role
	}
	return out
}
