//go:build scalar

package lanes

// Width is the number of lanes in every vector type.
const Width = 1
