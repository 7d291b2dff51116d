// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/arcitec/font-nexus/cmd/fontnexus"

func main() {
	cmd.Execute()
}
