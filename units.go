package gosdml

// unitAliases lists unit spellings that denote the same dimension and scale.
// Each pair matches in both directions.
var unitAliases = [...][2]string{
	{"g/cm^3", "Mg/m^3"},
	{"m^3/m^3", "mm/mm"},
	{"ppm", "mg/kg"},
	{"g/cc", "Mg/m^3"},
	{"0-1", "-"},
	{"0-1", "mm/mm"},
	{"cm^3/cm^3", "mm/mm"},
	{"0-1", "m^3/m^3"},
	{"0-1", "m^2/m^2"},
}

// UnitsMatch reports whether two unit strings denote the same dimension and
// scale. One pair of enclosing parentheses is ignored on each side and an
// empty unit matches anything.
func UnitsMatch(a, b string) bool {
	a, b = stripParens(a), stripParens(b)
	if a == b || a == "" || b == "" {
		return true
	}
	for _, p := range unitAliases {
		if (a == p[0] && b == p[1]) || (a == p[1] && b == p[0]) {
			return true
		}
	}
	return false
}

func stripParens(s string) string {
	if len(s) > 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1]
	}
	return s
}
