package validation

import (
	"testing"

	"travelease/model"

	"github.com/stretchr/testify/require"
)

func TestAliases(t *testing.T) {
	v := NewValidate()
	require.NoError(t, v.Var("9876543210", "mobile"))
	require.Error(t, v.Var("987654321", "mobile"))
	require.Error(t, v.Var("98765x3210", "mobile"))
	require.Error(t, v.Var("+987654321", "mobile"))
	require.NoError(t, v.Var("560001", "pincode"))
	require.Error(t, v.Var("56001", "pincode"))
	require.Error(t, v.Var("5600011", "pincode"))
}

func TestFields(t *testing.T) {
	err := New().Validate(&model.SignUpReq{Username: "asha", Email: "bad", Password: "123"})
	require.Error(t, err)
	fs := Fields(err)
	require.Len(t, fs, 2)
	require.Equal(t, "email", fs[0].Field)
	require.Equal(t, "password", fs[1].Field)
	require.Equal(t, "min", fs[1].Tag)
}
