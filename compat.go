package gosdml

import "strings"

// CanAssignFrom ranks how src may be assigned to v. Neither value is
// modified: empty arrays are compared through their element prototype.
//
// The relation is not transitive. Scalars of the same kind are Same; integer
// widths convert among themselves, and any numeric kind converts to a float
// destination. A numeric destination whose unit does not match the source's
// is Bad whatever the kinds.
func (v *Value) CanAssignFrom(src *Value) Rank {
	if src == nil {
		return Bad
	}
	switch src.cat {
	case catScalar:
		if v.cat != catScalar {
			return Bad
		}
		r := scalarRank(v.baseType, src.baseType)
		if v.baseType.IsNumeric() && !UnitsMatch(v.unit, src.unit) {
			r = Bad
		}
		return r
	case catArray:
		if v.cat != catArray {
			return Bad
		}
		de, se := v.elementPrototype(), src.elementPrototype()
		if de == nil || se == nil {
			if de == nil && se == nil && v.baseType == src.baseType {
				return Same
			}
			return Bad
		}
		return de.CanAssignFrom(se)
	default:
		if v.cat != catRecord {
			return Bad
		}
		return v.recordRank(src)
	}
}

func (v *Value) recordRank(src *Value) Rank {
	if len(v.members) == len(src.members) {
		same := true
		for i, m := range v.members {
			s := src.members[i]
			if !strings.EqualFold(m.name, s.name) || m.CanAssignFrom(s) != Same {
				same = false
				break
			}
		}
		if same {
			return Same
		}
	}
	for _, s := range src.members {
		m := v.findMember(s.name)
		if m == nil || m.CanAssignFrom(s) == Bad {
			return Bad
		}
	}
	return Compatible
}

// scalarRank applies the pairwise kind table.
func scalarRank(dst, src BaseType) Rank {
	switch {
	case dst == src:
		return Same
	case dst.IsInteger() && src.IsInteger():
		return Compatible
	case dst.IsFloat() && src.IsNumeric():
		return Compatible
	case src == Char && (dst == WChar || dst == String || dst == WString):
		return Compatible
	case src == WChar && dst == WString:
		return Compatible
	case src == String && dst == WString:
		return Compatible
	case src == String || dst == String || dst == WString:
		return Dodgy
	default:
		return Bad
	}
}
