package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskProfanity(t *testing.T) {
	f := NewProfanityFilter([]string{"darn", "darnit", " "})

	assert.Equal(t, "oh ******!", f.Mask("oh darnit!"))
	assert.Equal(t, "**** it", f.Mask("DARN it"))
	// no match inside other words
	assert.Equal(t, "darnation", f.Mask("darnation"))
}

func TestMaskProfanityEmptyFilter(t *testing.T) {
	f := NewProfanityFilter(nil)
	assert.Equal(t, "anything", f.Mask("anything"))
}

func TestMaskProfanityDefault(t *testing.T) {
	assert.Equal(t, "what ****", MaskProfanity("what shit"))
	assert.Equal(t, "", MaskProfanity(""))
}

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Pass  string `json:"password" validate:"min=6"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sample{Name: "a", Email: "a@b.co", Pass: "secret"}))

	err := ValidateStruct(sample{Email: "nope", Pass: "123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "password must be at least 6 characters")
}

func TestOid(t *testing.T) {
	_, err := Oid("postId", "xyz")
	assert.EqualError(t, err, "invalid postId")

	id, err := Oid("postId", "65f1a2b3c4d5e6f708091a2b")
	require.NoError(t, err)
	assert.Equal(t, "65f1a2b3c4d5e6f708091a2b", id.Hex())
}
