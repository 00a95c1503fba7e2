// Package lanes provides fixed-width float and integer vectors for the
// renderer's packed inner loops.
//
// Width is a compile-time constant: 4 by default and 1 when built with the
// "scalar" tag. Every type is a plain array and every operation a simple loop
// over it, so the compiler can keep lanes in registers and vectorise where the
// target allows. Products are explicitly rounded to float32 so lane results
// are bit-identical to the equivalent scalar expressions.
package lanes
