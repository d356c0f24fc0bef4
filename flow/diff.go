package flow

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"math"
	"reflect"
)

var diffOptions = []cmp.Option{
	cmpopts.EquateNaNs(),
	cmp.FilterValues(isMixedNumber, cmp.Comparer(equalNumbers)),
}

// HasDiff returns true if values differ structurally. Numbers compare by exact
// value regardless of their Go type, NaN equals NaN, map keys keep their kind.
func HasDiff(a, b interface{}) bool {
	return !cmp.Equal(normalize(a), normalize(b), diffOptions...)
}

type numberKind int

const (
	notNumber numberKind = iota
	signedNumber
	unsignedNumber
	floatNumber
)

func kindOf(value interface{}) numberKind {
	if value == nil {
		return notNumber
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedNumber
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedNumber
	case reflect.Float32, reflect.Float64:
		return floatNumber
	}
	return notNumber
}

// isMixedNumber selects number pairs not handled by cmpopts.EquateNaNs and plain equality
func isMixedNumber(x, y interface{}) bool {
	kx, ky := kindOf(x), kindOf(y)
	if kx == notNumber || ky == notNumber {
		return false
	}
	return !(kx == floatNumber && ky == floatNumber && reflect.TypeOf(x) == reflect.TypeOf(y))
}

func equalNumbers(x, y interface{}) bool {
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	kx, ky := kindOf(x), kindOf(y)
	if kx > ky {
		vx, vy = vy, vx
		kx, ky = ky, kx
	}
	switch {
	case kx == signedNumber && ky == signedNumber:
		return vx.Int() == vy.Int()
	case kx == unsignedNumber && ky == unsignedNumber:
		return vx.Uint() == vy.Uint()
	case kx == signedNumber && ky == unsignedNumber:
		return vx.Int() >= 0 && uint64(vx.Int()) == vy.Uint()
	case kx == signedNumber && ky == floatNumber:
		f := vy.Float()
		return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && int64(f) == vx.Int()
	case kx == unsignedNumber && ky == floatNumber:
		f := vy.Float()
		return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && uint64(f) == vx.Uint()
	}
	fx, fy := vx.Float(), vy.Float()
	if math.IsNaN(fx) && math.IsNaN(fy) {
		return true
	}
	return fx == fy
}

// normalize converts containers to []interface{} and map[interface{}]interface{}
// so that decoders producing different container types compare equal
func normalize(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Slice, reflect.Array:
		if rValue.Kind() == reflect.Slice && rValue.IsNil() {
			return []interface{}{}
		}
		ret := make([]interface{}, rValue.Len())
		for i := range ret {
			ret[i] = normalize(rValue.Index(i).Interface())
		}
		return ret
	case reflect.Map:
		ret := make(map[interface{}]interface{}, rValue.Len())
		iter := rValue.MapRange()
		for iter.Next() {
			ret[normalizeKey(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return ret
	case reflect.Struct:
		ret := make(map[interface{}]interface{}, rValue.NumField())
		for i := 0; i < rValue.NumField(); i++ {
			if field := rValue.Type().Field(i); field.IsExported() {
				ret[field.Name] = normalize(rValue.Field(i).Interface())
			}
		}
		return ret
	case reflect.Ptr, reflect.Interface:
		if rValue.IsNil() {
			return nil
		}
		return normalize(rValue.Elem().Interface())
	}
	return value
}

// normalizeKey gives numerically equal keys one representation, keys of other kinds are kept
func normalizeKey(key interface{}) interface{} {
	rValue := reflect.ValueOf(key)
	switch kindOf(key) {
	case signedNumber:
		return rValue.Int()
	case unsignedNumber:
		if u := rValue.Uint(); u <= math.MaxInt64 {
			return int64(u)
		}
		return rValue.Uint()
	case floatNumber:
		if f := rValue.Float(); f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f)
		}
		return rValue.Float()
	}
	if rValue.Kind() == reflect.String {
		return rValue.String()
	}
	return key
}
