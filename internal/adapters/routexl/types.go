package routexl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexFloat decodes a JSON number or a numeric string. RouteXL is not
// consistent about which one it sends.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("flexFloat: %q is not numeric: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type tourStop struct {
	Name     string    `json:"name"`
	Lat      flexFloat `json:"lat"`
	Lng      flexFloat `json:"lng"`
	Distance flexFloat `json:"distance"`
	Arrival  flexFloat `json:"arrival"`
}

type tourResponse struct {
	ID       string              `json:"id"`
	Count    int                 `json:"count"`
	Feasible bool                `json:"feasible"`
	Route    map[string]tourStop `json:"route"`
}
