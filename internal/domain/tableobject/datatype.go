package tableobject

import (
	"context"
	"encoding/json"
	"strconv"
)

// DataType is the persisted code for a property's logical scalar type.
// The codes are part of the cache wire format and must never be renumbered.
type DataType int

const (
	DataTypeString DataType = 0
	DataTypeBool   DataType = 1
	DataTypeInt    DataType = 2
	DataTypeFloat  DataType = 3

	// DataTypeUnsupported marks input that is not a JSON scalar. It is never
	// persisted; validation rejects it before any write.
	DataTypeUnsupported DataType = -1
)

// IsNumeric reports whether the code decodes as a number.
func (d DataType) IsNumeric() bool {
	return d == DataTypeInt || d == DataTypeFloat
}

// Value is a property value tagged with its runtime kind at the storage
// boundary. Write call sites pass an explicit tag instead of reflecting on
// runtime types.
type Value struct {
	Kind DataType
	Raw  string
}

func StringValue(s string) Value {
	return Value{Kind: DataTypeString, Raw: s}
}

func BoolValue(b bool) Value {
	return Value{Kind: DataTypeBool, Raw: strconv.FormatBool(b)}
}

func IntValue(i int64) Value {
	return Value{Kind: DataTypeInt, Raw: strconv.FormatInt(i, 10)}
}

func FloatValue(f float64) Value {
	return Value{Kind: DataTypeFloat, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ValueFromJSON tags a decoded JSON scalar. Numbers arriving as json.Number
// stay integers when they parse as one. A JSON null maps to the empty string,
// the delete sentinel of the write path; objects and arrays come back tagged
// DataTypeUnsupported so validation can reject them instead of a write path
// misreading them as a deletion.
func ValueFromJSON(v any) Value {
	switch tv := v.(type) {
	case nil:
		return StringValue("")
	case bool:
		return BoolValue(tv)
	case json.Number:
		if i, err := tv.Int64(); err == nil {
			return IntValue(i)
		}
		f, _ := tv.Float64()
		return FloatValue(f)
	case float64:
		if tv == float64(int64(tv)) {
			return IntValue(int64(tv))
		}
		return FloatValue(tv)
	case string:
		return StringValue(tv)
	default:
		return Value{Kind: DataTypeUnsupported}
	}
}

// DecodeValue reconstructs a typed value from its text form and registry
// code. This runs only in the cache-synchronization path; primary reads
// always return the raw text bag.
func DecodeValue(raw string, dt DataType) any {
	switch dt {
	case DataTypeBool:
		return raw == "true"
	case DataTypeInt:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return int64(0)
	case DataTypeFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return float64(0)
	default:
		return raw
	}
}

// PropertyType is the per-table registry entry recording the inferred type of
// a property name. Once created it is never changed: the first writer's type
// wins permanently for that (table, name) pair.
type PropertyType struct {
	ID       uint
	TableID  uint
	Name     string
	DataType DataType
}

type PropertyTypeRepository interface {
	// GetByTableAndName returns (nil, nil) when no registry row exists.
	GetByTableAndName(ctx context.Context, tableID uint, name string) (*PropertyType, error)
	Create(ctx context.Context, pt *PropertyType) error
	ListByTable(ctx context.Context, tableID uint) ([]PropertyType, error)
}
