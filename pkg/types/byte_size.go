// SPDX-License-Identifier: MPL-2.0

package types

import "fmt"

// mebibyte is the divisor used for every size shown to the operator.
const mebibyte = 1024 * 1024

// ByteSize is a count of bytes written to or found on disk.
type ByteSize int64

// MiB returns the size in mebibytes.
func (s ByteSize) MiB() float64 { return float64(s) / mebibyte }

// String formats the size with two decimals, e.g. "12.34 MiB".
func (s ByteSize) String() string {
	return fmt.Sprintf("%.02f MiB", s.MiB())
}
