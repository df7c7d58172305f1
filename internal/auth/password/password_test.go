package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$v=19$")

	assert.True(t, Verify("correct horse battery staple", encoded))
	assert.False(t, Verify("wrong password", encoded))
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("same input")
	require.NoError(t, err)
	b, err := Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, Verify("same input", a))
	assert.True(t, Verify("same input", b))
}

func TestVerifyRejectsMalformed(t *testing.T) {
	assert.False(t, Verify("anything", ""))
	assert.False(t, Verify("anything", "$argon2id$v=19$m=65536,t=1$short"))
	assert.False(t, Verify("anything", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"))
}
