package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCouponCode(t *testing.T) {
	got, err := NormalizeCouponCode("  save10 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", got)

	for _, bad := range []string{"", "ab", "has space", "TOO-LONG-CODE-THAT-KEEPS-GOING-ON-AND-ON", "EMOJI😀"} {
		_, err := NormalizeCouponCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeAccessCodeAndEmail(t *testing.T) {
	code, err := NormalizeAccessCode("abcd-efgh-jkmn")
	require.NoError(t, err)
	assert.Equal(t, "ABCD-EFGH-JKMN", code)

	_, err = NormalizeAccessCode("ABCDEFGHJKMN")
	assert.Error(t, err)

	email, err := NormalizeEmail(" Learner@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", email)

	_, err = NormalizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestRegisteredTagsReportJSONNames(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	type payload struct {
		Code        string   `json:"code" binding:"required,couponcode"`
		Permissions []string `json:"permissions" binding:"dive,permission"`
	}

	err := binding.Validator.ValidateStruct(&payload{Code: "x", Permissions: []string{"lessons:read", "root"}})
	fields := FieldErrors(err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "code")
	assert.Contains(t, fields, "permissions[1]")

	assert.NoError(t, binding.Validator.ValidateStruct(&payload{Code: "SAVE10", Permissions: []string{"progress:read"}}))
	assert.Nil(t, FieldErrors(nil))
}
