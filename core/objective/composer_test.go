package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smuggr.xyz/timeweave/core/csp"
)

func TestEvaluate_SumsWeightedTermsAndReportsBreakdown(t *testing.T) {
	m := csp.NewModel(nil)
	m.AddSoft(csp.SoftTerm{Name: "a", Weight: 2, Eval: func(*csp.State) int { return 3 }})
	m.AddSoft(csp.SoftTerm{Name: "b", Weight: 5, Eval: func(*csp.State) int { return 1 }})

	total, breakdown := Evaluate(m, nil)

	assert.Equal(t, 11, total) // 2*3 + 5*1
	assert.Equal(t, 6, breakdown["a"])
	assert.Equal(t, 5, breakdown["b"])
}

func TestEvaluate_ZeroWhenNoSoftTerms(t *testing.T) {
	m := csp.NewModel(nil)

	total, breakdown := Evaluate(m, nil)

	assert.Equal(t, 0, total)
	assert.Empty(t, breakdown)
}
