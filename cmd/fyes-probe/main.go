// SPDX-License-Identifier: MPL-2.0

// Command fyes-probe captures help, version and error text from a reference
// yes, generates the blobs fyes compiles in, and checks a built fyes against
// the reference byte for byte.
package main

import "os"

func main() {
	os.Exit(int(execute(os.Args[1:])))
}
