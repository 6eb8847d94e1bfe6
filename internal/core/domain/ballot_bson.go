package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// BSON mirrors the JSON shape so the mongo storage driver persists the same
// scalar-or-array representation as the flat-file driver.

func (b Ballot) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if b.multi {
		return bson.MarshalValue(b.ids)
	}
	if len(b.ids) == 0 {
		return bson.MarshalValue("")
	}
	return bson.MarshalValue(b.ids[0])
}

func (b *Ballot) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		var single string
		if err := raw.Unmarshal(&single); err != nil {
			return err
		}
		*b = Ballot{ids: []string{single}}
		return nil
	case bsontype.Array:
		var many []string
		if err := raw.Unmarshal(&many); err != nil {
			return err
		}
		*b = Ballot{ids: many, multi: true}
		return nil
	default:
		return fmt.Errorf("ballot must be a string or an array, got %s", t)
	}
}
