package converters

const (
	ErrMsgEmptyPattern      = "Date pattern cannot be empty."
	ErrMsgUnterminatedQuote = "Unterminated quote in date pattern."
	ErrMsgBadFraction       = "Fractional seconds must follow '.' or ','."
	ErrMsgLayoutLiteral     = "Literal text in date pattern contains layout elements"
	ErrMsgBadDateFormat     = "Bad date format, text does not match the column pattern"
	ErrMsgBadNumberFormat   = "Bad number format"
	ErrMsgFractionalInteger = "Fractional value for an integer field"
	ErrMsgBadBoolFormat     = "Bad boolean format"
	ErrMsgBadJSONFormat     = "Bad JSON format"
	ErrMsgUnsupportedNull   = "Unsupported null type"
	ErrMsgUnsupportedKind   = "Unsupported field kind"
)
