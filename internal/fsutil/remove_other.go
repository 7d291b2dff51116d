// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package fsutil

const symlinkSafeRemoval = false
