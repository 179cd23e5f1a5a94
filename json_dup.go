package goshape

import "github.com/reoring/goshape/internal/decode"

// DetectJSONDuplicateKeys reports every duplicated object key in a JSON
// document, located by path. It does not validate anything else.
func DetectJSONDuplicateKeys(data []byte) (Issues, error) {
	ps, err := decode.JSONDuplicateKeys(data)
	if err != nil {
		return nil, err
	}
	return fromProblems(ps), nil
}
