// Command seqcore error-corrects short sequencing reads against a k-mer
// spectrum and overlap evidence, and archives corrected batches.
package main

import "seqcore/cmd"

func main() {
	cmd.Execute()
}
