// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/gradlewire/gradlewire/cmd/gradlewire"

func main() {
	cmd.Execute()
}
