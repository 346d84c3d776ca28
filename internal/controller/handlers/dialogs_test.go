package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFormText(t *testing.T) {
	text, problem := normalizeFormText("  Карьерный рост \n", "тема", TopicMaxLength)
	assert.Empty(t, problem)
	assert.Equal(t, "Карьерный рост", text)

	_, problem = normalizeFormText("   ", "тема", TopicMaxLength)
	assert.Contains(t, problem, "«тема» не может быть пустым")

	_, problem = normalizeFormText(strings.Repeat("я", TopicMaxLength+1), "тема", TopicMaxLength)
	assert.Contains(t, problem, "Слишком длинный текст")

	text, problem = normalizeFormText(strings.Repeat("я", TopicMaxLength), "тема", TopicMaxLength)
	assert.Empty(t, problem)
	assert.Len(t, []rune(text), TopicMaxLength)
}

func TestParseHourlyRate(t *testing.T) {
	cases := map[string]string{
		"2500":      "2500.00",
		"1 999,50":  "1999.50",
		"3000 ₽":    "3000.00",
		"1250.555":  "1250.56",
		"1 000 000": "1000000.00",
	}
	for raw, want := range cases {
		rate, problem := parseHourlyRate(raw)
		assert.Empty(t, problem, raw)
		assert.Equal(t, want, rate.StringFixed(2), raw)
	}

	for _, raw := range []string{"дорого", "0", "0,5", "1000001"} {
		_, problem := parseHourlyRate(raw)
		assert.NotEmpty(t, problem, raw)
	}
}
