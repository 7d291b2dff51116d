// SPDX-License-Identifier: MPL-2.0

//go:build unix

package fsutil

// os.RemoveAll on unix walks the tree with openat/unlinkat relative to
// already-opened directory handles, so a swapped-in symlink is never followed.
const symlinkSafeRemoval = true
