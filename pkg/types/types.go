// Package types contains the shared data types of the wallet service.
package types

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Feature is an opaque binary blob (e.g. a biometric template) attached to an
// account at creation time. On the wire it is a JSON array of byte values,
// matching the existing client contract; base64 strings are also accepted on
// input for convenience.
type Feature []byte

// MarshalJSON encodes the blob as a JSON number array ([1,2,3]).
func (f Feature) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	nums := make([]uint16, len(f))
	for i, b := range f {
		nums[i] = uint16(b)
	}
	return json.Marshal(nums)
}

// UnmarshalJSON accepts either a JSON number array or a base64 string.
func (f *Feature) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("invalid base64 feature: %w", err)
		}
		*f = decoded
		return nil
	}

	var nums []uint16
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	out := make([]byte, len(nums))
	for i, n := range nums {
		if n > 255 {
			return fmt.Errorf("feature byte out of range: %d", n)
		}
		out[i] = byte(n)
	}
	*f = out
	return nil
}

// Account is a persisted wallet account row. A row is created once by the
// create-wallet flow and never updated or deleted afterwards.
type Account struct {
	ID       int64   `json:"id"`
	UID      int64   `json:"uid"`
	Mnemonic string  `json:"mnemonic,omitempty"`
	Address  string  `json:"address,omitempty"`
	Token    string  `json:"token,omitempty"`
	Feature  Feature `json:"feature,omitempty"`
}
