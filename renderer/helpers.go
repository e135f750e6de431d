// Package renderer formats games, trades and market data as markdown.
package renderer

import (
	"bytes"
	"io"
	"strconv"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

func itoa(i int) string { return strconv.Itoa(i) }
