package codec

import "fmt"

// Validating adds checked variants of Encode and Decode on top of a codec.
// The plain methods of the wrapped codec stay unchecked; build-time code and
// debugging tools call the checked ones.
type Validating struct {
	IntegerCodec
}

func NewValidating(c IntegerCodec) *Validating {
	return &Validating{IntegerCodec: c}
}

// EncodeChecked verifies src and the destination size before encoding.
// Codecs that do not implement Sizer are encoded unchecked.
func (v *Validating) EncodeChecked(dst []byte, src []uint64) (int, error) {
	if sizer, ok := v.IntegerCodec.(Sizer); ok {
		need, err := sizer.EncodedLen(src)
		if err != nil {
			return 0, fmt.Errorf("%s: encode: %w", v.Name(), err)
		}
		if need+Padding > len(dst) {
			return 0, fmt.Errorf("%s: encode: %w: need %d bytes, have %d", v.Name(), ErrEncodeOverflow, need+Padding, len(dst))
		}
	}
	return v.Encode(dst, src), nil
}

// DecodeChecked verifies the read-ahead padding of src before decoding.
// Codecs implementing Checker also get the encoded values verified.
func (v *Validating) DecodeChecked(dst []uint64, src []byte) error {
	if err := v.check(len(dst), src); err != nil {
		return fmt.Errorf("%s: decode: %w", v.Name(), err)
	}
	v.Decode(dst, src)
	return nil
}

// DecodeWithWriterChecked verifies src and count like DecodeChecked.
func (v *Validating) DecodeWithWriterChecked(sink Sink, count int, src []byte) error {
	if err := v.check(count, src); err != nil {
		return fmt.Errorf("%s: decode: %w", v.Name(), err)
	}
	v.DecodeWithWriter(sink, count, src)
	return nil
}

func (v *Validating) check(count int, src []byte) error {
	if err := checkPadding(src); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrCountMismatch, count)
	}
	if checker, ok := v.IntegerCodec.(Checker); ok {
		return checker.CheckEncoded(count, src)
	}
	return nil
}

func checkPadding(src []byte) error {
	if cap(src)-len(src) < Padding {
		return fmt.Errorf("%w: %d spare bytes", ErrShortPadding, cap(src)-len(src))
	}
	return nil
}
