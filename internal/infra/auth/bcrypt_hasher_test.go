package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	password := "correct-horse"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	password := "correct-horse"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong-horse", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_CustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasher(customCost)

	hash, err := hasher.Hash("correct-horse")
	assert.NoError(t, err)

	// Verify the hash uses the configured cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_OutOfRangeCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("correct-horse")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	assert.NoError(t, hasher.ValidatePasswordStrength("long-enough"))
	assert.NoError(t, hasher.ValidatePasswordStrength("123456"))

	// Too short
	err := hasher.ValidatePasswordStrength("12345")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")

	// Empty
	assert.Error(t, hasher.ValidatePasswordStrength(""))

	// Beyond bcrypt's 72-byte input limit
	err = hasher.ValidatePasswordStrength(strings.Repeat("x", 73))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at most 72 characters")
}
