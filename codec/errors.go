package codec

import "errors"

var (
	ErrInvalidValue   = errors.New("codec: value can not be encoded")
	ErrEncodeOverflow = errors.New("codec: destination is too small")
	ErrShortPadding   = errors.New("codec: source lacks read-ahead padding")
	ErrUnknownCodec   = errors.New("codec: unknown codec")
	ErrCountMismatch  = errors.New("codec: count does not fit the encoded data")
)
