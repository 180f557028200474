package normalize

import "encoding/json"

// Optional tracks JSON field presence on partial updates, so that an omitted
// field and a field explicitly set to null remain distinct states. Set is
// true whenever the key appeared in the payload; Valid is false for null.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	o.Valid = true
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
