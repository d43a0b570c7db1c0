package message

type fieldKind int

const (
	fieldStructured fieldKind = iota
	fieldPair
)

// Field is either a structured title/value/short record or a bare key/value
// pair. Pairs always render as short fields titled by their key.
// Values are text; callers format numbers and other scalars themselves,
// e.g. with strconv.Itoa.
type Field struct {
	kind  fieldKind
	title string
	value string
	short bool
}

func NewField(title, value string) Field {
	return Field{kind: fieldStructured, title: title, value: value, short: true}
}

func PairField(key, value string) Field {
	return Field{kind: fieldPair, title: key, value: value, short: true}
}

// Long returns a copy rendered at full attachment width.
// Pairs stay short.
func (f Field) Long() Field {
	if f.kind == fieldStructured {
		f.short = false
	}
	return f
}

func (f Field) IsPair() bool  { return f.kind == fieldPair }
func (f Field) Title() string { return f.title }
func (f Field) Value() string { return f.value }
func (f Field) Short() bool   { return f.short }
