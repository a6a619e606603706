package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RawValue carries a client-supplied JSON value through to storage without
// coercing it, so "2.50", 2.5 and "abc" are all persisted as sent.
type RawValue struct {
	v interface{}
}

func NewRawValue(v interface{}) RawValue {
	return RawValue{v: v}
}

// Value returns the decoded value: nil, string, bool, a number type, a slice
// or a map.
func (r RawValue) Value() interface{} {
	return r.v
}

// IsZero reports an absent or null value. Both the bson and json encoders use
// it for omitempty / omitzero.
func (r RawValue) IsZero() bool {
	return r.v == nil
}

func (r RawValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.v)
}

func (r *RawValue) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	r.v = v
	return nil
}

func (r RawValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.v == nil {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(r.v)
}

// UnmarshalBSONValue decodes documents as bson.M and arrays as plain slices,
// at any depth, so they render as the JSON the client sent rather than as
// key/value pair lists.
func (r *RawValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		r.v = nil
		return nil
	}

	var v interface{}
	if err := bson.UnmarshalValue(t, data, &v); err != nil {
		return err
	}
	r.v = plainValue(v)
	return nil
}

func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.D:
		doc := make(bson.M, len(val))
		for _, e := range val {
			doc[e.Key] = plainValue(e.Value)
		}
		return doc
	case primitive.M:
		doc := make(bson.M, len(val))
		for k, e := range val {
			doc[k] = plainValue(e)
		}
		return doc
	case primitive.A:
		list := make([]interface{}, len(val))
		for i, e := range val {
			list[i] = plainValue(e)
		}
		return list
	default:
		return v
	}
}
