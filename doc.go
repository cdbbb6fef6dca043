// Package gosdml implements self-describing typed values: scalars,
// homogeneous arrays and named records built programmatically or from an
// SDML/DDML description, with a byte-exact little-endian wire format.
//
// Design policy:
//   - Keep only public APIs in the root package; put detailed implementations under internal/.
//   - Place format codecs under codec/ and the CLI under cmd/gosdml.
//   - Report failures as Issues (path, code, message) matched by errors.Is
//     against the Err* sentinels.
//
// Typical usage:
//
//	v, err := gosdml.FromSchema(gosdml.XMLBytes(doc))
//	rain, _ := v.Member("rain")
//	_ = rain.SetFloat64(3.5)
//	wire, _ := v.MarshalBinary()
//	n, err := other.SetData(wire)
//	rank := other.CanAssignFrom(v)
package gosdml
