package serverutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessResponseEnvelope(t *testing.T) {
	res := SuccessResponse("Success get users", []string{"a", "b"})

	assert.True(t, res.Success)
	assert.Equal(t, 200, res.Code)
	assert.Equal(t, "Success get users", res.Message)
	assert.Equal(t, []string{"a", "b"}, res.Data)
}

func TestErrorResponseEnvelope(t *testing.T) {
	res := ErrorResponse(404, "User not found")

	assert.False(t, res.Success)
	assert.Equal(t, 404, res.Code)
	assert.Equal(t, "User not found", res.Message)
	assert.Nil(t, res.Data)
}

func TestResponseJSONShape(t *testing.T) {
	raw, err := json.Marshal(SuccessResponse[any]("ok", nil))
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "success")
	assert.Contains(t, decoded, "code")
	assert.Contains(t, decoded, "message")
	assert.Contains(t, decoded, "data")
}

func TestValidateRequest(t *testing.T) {
	type loginReq struct {
		Username string `validate:"required"`
		Password string `validate:"required,min=6"`
		Email    string `validate:"omitempty,email"`
	}

	t.Run("valid request passes", func(t *testing.T) {
		err := ValidateRequest(loginReq{Username: "admin", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("missing field reported", func(t *testing.T) {
		err := ValidateRequest(loginReq{Password: "secret1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "username is required")
	})

	t.Run("min length reported", func(t *testing.T) {
		err := ValidateRequest(loginReq{Username: "admin", Password: "abc"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "password must be at least 6 characters")
	})

	t.Run("bad email reported", func(t *testing.T) {
		err := ValidateRequest(loginReq{Username: "admin", Password: "secret1", Email: "nope"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email must be a valid email")
	})
}
