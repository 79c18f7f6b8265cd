package types

import "encoding/json"

// OptionalUint distinguishes an absent JSON field from an explicit null.
// Used where a PATCH must support "leave unchanged" vs "clear" vs "set",
// e.g. ownerId on the scoring endpoint.
type OptionalUint struct {
	Present bool
	Value   *uint
}

func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o OptionalUint) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
