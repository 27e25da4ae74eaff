package common

import (
	"strings"
	"testing"

	"github.com/AlexZinkM/keyvault/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMaskKey(t *testing.T) {
	eth := "0123456789" + strings.Repeat("x", 44) + "abcdefghij"
	assert.Equal(t, "0123456789...abcdefghij", MaskKey(eth))

	assert.Equal(t, "short1...short2", MaskKey("short1mid__short2"))
	assert.Equal(t, "***", MaskKey("short"))
	assert.Equal(t, "***", MaskKey(""))
}

func TestSchemeCounts(t *testing.T) {
	var c SchemeCounts
	c.Add(model.SchemeETH)
	c.Add(model.SchemeSOL)
	c.Add(model.SchemeETH)
	c.Add(model.Scheme("BTC"))

	assert.Equal(t, 2, c.ETH)
	assert.Equal(t, 1, c.SOL)
	assert.Equal(t, 3, c.Total())
}
