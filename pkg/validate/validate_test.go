package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Username             string  `json:"username" validate:"required,alpha_dash,min=3,max=50"`
	Email                string  `json:"email"    validate:"required,email"`
	Password             string  `json:"password" validate:"required,min=8,confirmed"`
	PasswordConfirmation string  `json:"password_confirmation"`
	Phone                string  `json:"phone"    validate:"nullable,digits=10"`
	Rating               int     `json:"rating"   validate:"required,gte=1,lte=5"`
	Role                 string  `json:"role"     validate:"nullable,in=admin,user"`
	Price                float64 `json:"price"    validate:"nullable,numeric,gte=0"`
}

func validInput() registerInput {
	return registerInput{
		Username:             "minh_tran",
		Email:                "minh@example.com",
		Password:             "sup3rsecret",
		PasswordConfirmation: "sup3rsecret",
		Rating:               4,
	}
}

func TestStructValid(t *testing.T) {
	errs := Struct(validInput())
	assert.Empty(t, errs)
	assert.False(t, HasErrors(errs))
}

func TestStructRequired(t *testing.T) {
	in := validInput()
	in.Username = ""
	in.Rating = 0

	errs := Struct(in)
	require.True(t, HasErrors(errs))
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "rating")
}

func TestStructEmail(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"

	errs := Struct(in)
	assert.Contains(t, errs, "email")
}

func TestStructConfirmed(t *testing.T) {
	in := validInput()
	in.PasswordConfirmation = "different"

	errs := Struct(in)
	assert.Contains(t, errs, "password")
}

func TestStructInRule(t *testing.T) {
	in := validInput()
	in.Role = "superuser"
	assert.Contains(t, Struct(in), "role")

	in.Role = "admin"
	assert.Empty(t, Struct(in))
}

func TestStructRangeRules(t *testing.T) {
	in := validInput()
	in.Rating = 6
	assert.Contains(t, Struct(in), "rating")

	in.Rating = 1
	assert.Empty(t, Struct(in))
}

func TestStructNullableSkipsEmpty(t *testing.T) {
	in := validInput()
	in.Phone = "" // nullable, so digits=10 must not fire
	assert.Empty(t, Struct(in))

	in.Phone = "12345"
	assert.Contains(t, Struct(in), "phone")

	in.Phone = "0912345678"
	assert.Empty(t, Struct(in))
}

func TestSplitRulesKeepsInParams(t *testing.T) {
	rules := splitRules("required,in=admin,user,max=100")
	assert.Equal(t, []string{"required", "in=admin,user", "max=100"}, rules)
}
