package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tradebot/pkg/logx"
)

func TestSensitiveDataMasker(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bearer header",
			input:    "Authorization: Bearer abc.def.ghi\r\n",
			expected: "Authorization: Bearer [MASKED]\r\n",
		},
		{
			name:     "token field",
			input:    `{"token": "123456:qwerty"}`,
			expected: `{"token": "[MASKED]"}`,
		},
		{
			name:     "api key field",
			input:    `{"apiKey": "AABBCCDD"}`,
			expected: `{"apiKey": "[MASKED]"}`,
		},
		{
			name:     "trade url field",
			input:    `{"tradeUrl": "https://example.com/tradeoffer/new/?partner=1&token=x"}`,
			expected: `{"tradeUrl": "[MASKED]"}`,
		},
		{
			name:     "plain payload untouched",
			input:    `{"sku": "5021;6", "amount": 2}`,
			expected: `{"sku": "5021;6", "amount": 2}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq.Equal(tc.expected, string(masker.Mask([]byte(tc.input))))
		})
	}

	nop := logx.NewNopSensitiveDataMasker()
	rq.Equal(`{"token": "x"}`, string(nop.Mask([]byte(`{"token": "x"}`))))
}
