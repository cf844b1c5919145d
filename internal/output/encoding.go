package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeterministicEncode produces byte-identical compact JSON output:
//   - keys sorted alphabetically
//   - floats rounded, NaN and infinities dropped
//   - nil fields and empty collections omitted
func DeterministicEncode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	// Attribute images keep <, > and & as written
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(normalizeValue(v)); err != nil {
		return nil, err
	}
	// Encode appends a newline; callers add their own
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DeterministicEncodeIndented produces byte-identical indented JSON output.
func DeterministicEncodeIndented(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(normalizeValue(v)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DeterministicEncodeYAML produces YAML with the same keys and omissions as
// the JSON encoders.
func DeterministicEncodeYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(normalizeValue(v)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeValue recursively normalizes a value for deterministic encoding
func normalizeValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	// Follow pointers down to the value
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Map:
		return normalizeMap(val)
	case reflect.Slice, reflect.Array:
		return normalizeSlice(val)
	case reflect.Struct:
		return normalizeStruct(val)
	case reflect.Float32, reflect.Float64:
		f := val.Float()
		// JSON has no NaN; not-applicable metrics disappear
		if !IsNumber(f) {
			return nil
		}
		return RoundFloat(f)
	case reflect.Interface:
		if val.IsNil() {
			return nil
		}
		return normalizeValue(val.Interface())
	default:
		return val.Interface()
	}
}

// normalizeMap converts a map with string keys into a map of normalized
// values. encoding/json and yaml.v3 both sort map keys.
func normalizeMap(val reflect.Value) map[string]interface{} {
	if val.IsNil() {
		return nil
	}

	result := make(map[string]interface{})
	iter := val.MapRange()
	for iter.Next() {
		if value := normalizeValue(iter.Value().Interface()); value != nil {
			result[iter.Key().String()] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normalizeSlice(val reflect.Value) interface{} {
	if val.Kind() == reflect.Slice && val.IsNil() {
		return nil
	}
	if val.Len() == 0 {
		return nil
	}

	result := make([]interface{}, val.Len())
	for i := range result {
		result[i] = normalizeValue(val.Index(i).Interface())
	}
	return result
}

// normalizeStruct converts a struct to a map keyed by its JSON field names
func normalizeStruct(val reflect.Value) map[string]interface{} {
	result := make(map[string]interface{})
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		// YAML output reuses the JSON names
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		tagName, omitEmpty := parseJSONTag(jsonTag)
		if tagName == "" {
			tagName = field.Name
		}

		normalized := normalizeValue(val.Field(i).Interface())
		// omitempty is judged after normalization, so a NaN-only field drops too
		if omitEmpty && isZeroValue(normalized) {
			continue
		}
		if normalized != nil {
			result[tagName] = normalized
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// parseJSONTag parses a JSON struct tag
func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty
}

// isZeroValue checks if a normalized value is zero/empty
func isZeroValue(v interface{}) bool {
	if v == nil {
		return true
	}

	switch val := v.(type) {
	case bool:
		return !val
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(val).Int() == 0
	case uint, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(val).Uint() == 0
	case float32, float64:
		return reflect.ValueOf(val).Float() == 0
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	default:
		return false
	}
}
