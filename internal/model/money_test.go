package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMoneyFromString(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain integer", "8400", "8400", false},
		{"with cents", "8400.50", "8400.5", false},
		{"dollar prefix", "$8400", "8400", false},
		{"thousands commas", "1,250,000", "1250000", false},
		{"dollar and commas", "$12,500.75", "12500.75", false},
		{"surrounding whitespace", "  300 ", "300", false},
		{"negative", "-100", "-100", false},
		{"empty", "", "", true},
		{"not a number", "lots", "", true},
		{"double decimal point", "1.2.3", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MoneyFromString(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestMoneyYAMLScalarForms(t *testing.T) {
	// All scalar spellings must parse to the same decimal; unquoted floats
	// keep their written value instead of round-tripping through float64.
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"unquoted int", "cost: 8400", "8400"},
		{"unquoted float", "cost: 8400.10", "8400.1"},
		{"quoted with commas", `cost: "8,400.10"`, "8400.1"},
		{"quoted with dollar", `cost: "$8400"`, "8400"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var doc struct {
				Cost Money `yaml:"cost"`
			}
			require.NoError(t, yaml.Unmarshal([]byte(tc.doc), &doc))
			assert.Equal(t, tc.want, doc.Cost.String())
		})
	}
}

func TestMoneyYAMLRejectsNonScalar(t *testing.T) {
	var doc struct {
		Cost Money `yaml:"cost"`
	}
	err := yaml.Unmarshal([]byte("cost:\n  amount: 100"), &doc)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoneyJSON(t *testing.T) {
	m, err := MoneyFromString("8400.50")
	require.NoError(t, err)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"8400.5"`, string(b))

	var back Money
	require.NoError(t, json.Unmarshal([]byte(`"1250.25"`), &back))
	assert.Equal(t, "1250.25", back.String())
	// Bare numbers must parse too; portfolio files often omit quotes.
	require.NoError(t, json.Unmarshal([]byte(`990`), &back))
	assert.Equal(t, "990", back.String())
	// Same dashboard forms as YAML.
	require.NoError(t, json.Unmarshal([]byte(`"$52,000"`), &back))
	assert.Equal(t, "52000", back.String())
	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.Equal(t, "52000", back.String(), "null leaves the amount untouched")
}
