package literal

import (
	"bytes"
	"encoding/gob"

	"github.com/shopspring/decimal"
)

// literalDTO exposes Literal's unexported fields to gob, which only
// walks exported struct fields: without this, embedding a Literal
// inside an ast.LiteralExpr and gob-encoding the surrounding AST (as
// storage/kvsqlite does for a table's DEFAULT expressions) would
// silently drop every field.
type literalDTO struct {
	Kind  Kind
	Bool  bool
	Num   decimal.Decimal
	Text  string
	Bytea []byte
}

// MarshalBinary implements encoding.BinaryMarshaler, which gob falls
// back to for types without GobEncode/GobDecode methods.
func (l Literal) MarshalBinary() ([]byte, error) {
	dto := literalDTO{Kind: l.kind, Bool: l.b, Num: l.num, Text: l.text, Bytea: l.bytea}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dto); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *Literal) UnmarshalBinary(data []byte) error {
	var dto literalDTO
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&dto); err != nil {
		return err
	}
	*l = Literal{kind: dto.Kind, b: dto.Bool, num: dto.Num, text: dto.Text, bytea: dto.Bytea}
	return nil
}
