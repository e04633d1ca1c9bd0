package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate(42)
	second := Generate(42)
	assert.Equal(t, first, second)
	assert.Len(t, first, AnswerLength)
	assert.Equal(t, "YRGWK", SequenceString(first))
}

func TestGenerateKnownDailySeeds(t *testing.T) {
	d := NewDeriver("test-salt")

	cases := map[string]string{
		"§2025-11-11": "KPOBY",
		"§2025-11-10": "BYRGW",
		"§2025-13-45": "GWKPO",
	}
	for raw, want := range cases {
		id := d.Derive(raw)
		assert.Equal(t, want, SequenceString(Generate(id.Seed)), "raw=%q", raw)
	}
}

func TestGenerateDifferentDatesDiffer(t *testing.T) {
	d := NewDeriver("test-salt")

	a := Generate(d.Derive("§2025-11-10").Seed)
	b := Generate(d.Derive("§2025-11-11").Seed)
	assert.NotEqual(t, a, b)
}

func TestGenerateOnlyUsesAlphabetColors(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		for _, c := range Generate(seed) {
			_, ok := NormalizeColor(string(c))
			assert.True(t, ok, "seed=%d color=%q", seed, c)
		}
	}
}

func TestGenerateNegativeSeed(t *testing.T) {
	answer := Generate(-17)
	assert.Len(t, answer, AnswerLength)
	assert.Equal(t, answer, Generate(-17))
}
