package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyApplyDiscount(t *testing.T) {
	tests := []struct {
		price   string
		percent int
		want    string
	}{
		{"5.99", 10, "5.39"},
		{"5.99", 0, "5.99"},
		{"49.99", 25, "37.49"},
		{"49.99", 100, "0.00"},
		{"5.99", 15, "5.09"},
	}

	for _, tt := range tests {
		got := MustMoney(tt.price).ApplyDiscount(tt.percent)
		assert.Equal(t, tt.want, got.String(), "%s -%d%%", tt.price, tt.percent)
	}
}

func TestMoneyJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{MustMoney("5.39")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":5.39}`, string(raw))

	var decoded struct {
		Price Money `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":49.99}`), &decoded))
	assert.True(t, decoded.Price.Equal(MustMoney("49.99")))
}

func TestRoleAndPermissions(t *testing.T) {
	assert.True(t, RoleStaff.Valid())
	assert.False(t, Role("superadmin").Valid())
	assert.True(t, LanguageModeLearnEnglish.Valid())
	assert.False(t, LanguageMode("learn-klingon").Valid())
	assert.True(t, IsKnownPermission(PermissionLessonsRead))
	assert.False(t, IsKnownPermission("lessons:delete"))
	for _, p := range DefaultStaffPermissions {
		assert.True(t, IsKnownPermission(p))
	}
}
