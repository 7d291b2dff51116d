// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func homeVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func TestSetHomeDir_RestoresOnCleanup(t *testing.T) {
	envVar := homeVar()
	original, hadOriginal := os.LookupEnv(envVar)
	dir := t.TempDir()

	restore := SetHomeDir(t, dir)
	if got := os.Getenv(envVar); got != dir {
		t.Errorf("%s = %q, want %q", envVar, got, dir)
	}

	restore()
	got, ok := os.LookupEnv(envVar)
	if ok != hadOriginal || got != original {
		t.Errorf("after restore %s = %q (set=%v), want %q (set=%v)", envVar, got, ok, original, hadOriginal)
	}
}
