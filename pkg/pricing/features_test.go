package pricing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/pricing"
)

func TestFeatureRulesFor(t *testing.T) {
	t.Parallel()

	rules := pricing.DefaultFeatureRules()

	tests := []struct {
		name    string
		product string
		want    []string
	}{
		{"basic", "Basic Plan", rules.Rules[0].Features},
		{"case insensitive", "PRO", rules.Rules[1].Features},
		{"enterprise", "Enterprise Suite", rules.Rules[2].Features},
		{"first rule wins", "Basic Pro Bundle", rules.Rules[0].Features},
		{"default", "Starter", rules.Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rules.For(tt.product))
		})
	}

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()
		got := rules.For("basic")
		got[0] = "changed"
		assert.NotEqual(t, "changed", rules.For("basic")[0])
	})
}

func TestParseFeatureRules(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		rules, err := pricing.ParseFeatureRules([]byte(`
rules:
  - match: gold
    features: ["Everything", "Priority"]
default: ["Core"]
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Everything", "Priority"}, rules.For("Gold Tier"))
		assert.Equal(t, []string{"Core"}, rules.For("Silver"))
	})

	t.Run("empty match", func(t *testing.T) {
		t.Parallel()

		_, err := pricing.ParseFeatureRules([]byte("rules:\n  - match: \"\"\n    features: [a]\n"))
		require.ErrorIs(t, err, pricing.ErrInvalidFeatureRules)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := pricing.ParseFeatureRules([]byte("rules: ["))
		require.ErrorIs(t, err, pricing.ErrInvalidFeatureRules)
	})
}

func TestLoadFeatureRules(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses defaults", func(t *testing.T) {
		t.Parallel()
		rules, err := pricing.LoadFeatureRules("")
		require.NoError(t, err)
		assert.Equal(t, pricing.DefaultFeatureRules(), rules)
	})

	t.Run("from file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "features.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default: [\"Only\"]\n"), 0o600))

		rules, err := pricing.LoadFeatureRules(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Only"}, rules.For("anything"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := pricing.LoadFeatureRules(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestNormalizerWithCustomRules(t *testing.T) {
	t.Parallel()

	n := pricing.NewNormalizer(pricing.FeatureRules{Default: []string{"x"}})
	plans := n.Normalize([]pricing.RawProduct{{Name: "Pro"}})
	require.Len(t, plans, 1)
	assert.Equal(t, []string{"x"}, plans[0].Features)
}
