package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateRequest(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantID   int64
		wantName string
		wantErr  error
		field    string
	}{
		{name: "integer id", body: `{"id": 100}`, wantID: 100},
		{name: "id and name", body: `{"id": 42, "name": "voice"}`, wantID: 42, wantName: "voice"},
		{name: "numeric string", body: `{"id": "300"}`, wantID: 300},
		{name: "padded string", body: `{"id": " 12 "}`, wantID: 12},
		{name: "integral float", body: `{"id": 100.0}`, wantID: 100},
		{name: "exponent", body: `{"id": 1e2}`, wantID: 100},
		{name: "fractional mantissa with exponent", body: `{"id": 1.5e1}`, wantID: 15},
		{name: "negative exponent", body: `{"id": 1000e-1}`, wantID: 100},
		{name: "trailing fraction zeros", body: `{"id": 4094.000}`, wantID: 4094},
		{name: "negative", body: `{"id": -5}`, wantID: -5},
		{name: "null name", body: `{"id": 5, "name": null}`, wantID: 5},
		{name: "huge number saturates", body: `{"id": 99999999999999999999}`, wantID: math.MaxInt64},
		{name: "huge negative string saturates", body: `{"id": "-99999999999999999999"}`, wantID: math.MinInt64},

		{name: "empty body", body: ``, wantErr: ErrInvalidRequest},
		{name: "malformed", body: `{"id": `, wantErr: ErrInvalidRequest},
		{name: "array", body: `[1, 2]`, wantErr: ErrInvalidRequest},
		{name: "null body", body: `null`, wantErr: ErrInvalidRequest},
		{name: "scalar body", body: `100`, wantErr: ErrInvalidRequest},

		{name: "missing id", body: `{"name": "x"}`, wantErr: ErrMissingField, field: "id"},
		{name: "empty object", body: `{}`, wantErr: ErrMissingField, field: "id"},

		{name: "word", body: `{"id": "abc"}`, wantErr: ErrInvalidType, field: "id"},
		{name: "fraction", body: `{"id": 100.5}`, wantErr: ErrInvalidType, field: "id"},
		{name: "fraction below float precision", body: `{"id": 100.00000000000001}`, wantErr: ErrInvalidType, field: "id"},
		{name: "fraction at upper bound", body: `{"id": 4094.0000000000001}`, wantErr: ErrInvalidType, field: "id"},
		{name: "exponent leaves fraction", body: `{"id": 1.25e1}`, wantErr: ErrInvalidType, field: "id"},
		{name: "tiny exponent", body: `{"id": 1e-400}`, wantErr: ErrInvalidType, field: "id"},
		{name: "fraction string", body: `{"id": "100.5"}`, wantErr: ErrInvalidType, field: "id"},
		{name: "boolean", body: `{"id": true}`, wantErr: ErrInvalidType, field: "id"},
		{name: "null id", body: `{"id": null}`, wantErr: ErrInvalidType, field: "id"},
		{name: "object id", body: `{"id": {"v": 1}}`, wantErr: ErrInvalidType, field: "id"},
		{name: "numeric name", body: `{"id": 5, "name": 7}`, wantErr: ErrInvalidType, field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeCreateRequest([]byte(tt.body))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				if tt.field != "" {
					var fieldErr *FieldError
					require.True(t, errors.As(err, &fieldErr))
					assert.Equal(t, tt.field, fieldErr.Field)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, req.ID)
			assert.Equal(t, tt.wantName, req.Name)
		})
	}
}

func TestFieldError_Message(t *testing.T) {
	assert.Equal(t, "missing required field: id", missingField("id").Error())
	assert.Equal(t, "invalid field type: id: must be an integer", invalidType("id", "must be an integer").Error())
}
