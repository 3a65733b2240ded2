// SPDX-License-Identifier: MIT

// Package report renders a pairing.Result for people and for machines.
//
// The text form uses the wording of the weekly announcement:
//
//	Ada, Grace, and Linus will form a group of 3
//	Alan and Barbara will pair
//
// The structured forms (JSON, YAML, CBOR) share one Document shape. CBOR uses
// Core Deterministic Encoding so identical results produce identical bytes.
package report
