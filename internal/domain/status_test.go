package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{StatusNotEligible, StatusNotActionable, StatusActionable}

func TestStatus_Ordering(t *testing.T) {
	assert.Equal(t, StatusNotEligible, StatusNotEligible.Worst(StatusActionable))
	assert.Equal(t, StatusNotActionable, StatusActionable.Worst(StatusNotActionable))
	assert.Equal(t, StatusActionable, StatusNotEligible.Best(StatusActionable))
	assert.Equal(t, StatusNotActionable, StatusNotEligible.Best(StatusNotActionable))

	for _, a := range allStatuses {
		for _, b := range allStatuses {
			assert.Equal(t, a.Worst(b), b.Worst(a))
			assert.Equal(t, a.Best(b), b.Best(a))
			assert.Equal(t, a, a.Worst(a.Best(b)).Best(a.Worst(b)))
		}
	}
}

func TestStatus_ActionRuleType(t *testing.T) {
	assert.Equal(t, RuleTypeRedirect, StatusActionable.ActionRuleType())
	assert.Equal(t, RuleTypeNotEligibleAction, StatusNotEligible.ActionRuleType())
	assert.Equal(t, RuleTypeNotActionableAction, StatusNotActionable.ActionRuleType())
}

func TestStatus_JSONRoundTrip(t *testing.T) {
	for _, s := range allStatuses {
		out, err := json.Marshal(s)
		require.NoError(t, err)

		var back Status
		require.NoError(t, json.Unmarshal(out, &back))
		assert.Equal(t, s, back)
	}

	out, err := json.Marshal(StatusNotActionable)
	require.NoError(t, err)
	assert.Equal(t, `"NotActionable"`, string(out))

	var s Status
	assert.Error(t, json.Unmarshal([]byte(`"Maybe"`), &s))
}
