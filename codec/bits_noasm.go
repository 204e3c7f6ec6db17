//go:build noasm

package codec

type defaultBits = portableBits
