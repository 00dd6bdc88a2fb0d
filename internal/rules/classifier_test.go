package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

func TestDefaultTableValidate(t *testing.T) {
	require.NoError(t, DefaultTable.Validate())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		param string
		value float64
		tier  models.Tier
	}{
		{"power normal", ParamPowerOutput, 10500, models.TierNormal},
		{"power warning", ParamPowerOutput, 9000, models.TierWarning},
		{"power low trouble", ParamPowerOutput, 5000, models.TierTrouble},
		{"power over trouble", ParamPowerOutput, 12500, models.TierTrouble},
		{"vswr normal", ParamVSWR, 1.1, models.TierNormal},
		{"vswr warning", ParamVSWR, 1.27, models.TierWarning},
		{"vswr trouble", ParamVSWR, 2.5, models.TierTrouble},
		{"cn normal", ParamCN, 45, models.TierNormal},
		{"cn warning", ParamCN, 35, models.TierWarning},
		{"cn trouble", ParamCN, 12, models.TierTrouble},
		{"margin normal", ParamMargin, 25, models.TierNormal},
		{"voltage normal", ParamVoltage, 220, models.TierNormal},
		{"voltage low warning", ParamVoltage, 212, models.TierWarning},
		{"voltage high warning", ParamVoltage, 228, models.TierWarning},
		{"voltage low trouble", ParamVoltage, 180, models.TierTrouble},
		{"voltage high trouble", ParamVoltage, 240, models.TierTrouble},
		{"temperature normal", ParamTemperature, 19, models.TierNormal},
		{"temperature trouble", ParamTemperature, 30, models.TierTrouble},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tier, advice := DefaultTable.Classify(tc.param, tc.value)
			assert.Equal(t, tc.tier, tier)
			assert.NotEqual(t, NoAdvice, advice)
			assert.NotEmpty(t, advice)
		})
	}
}

func TestClassifyBoundsInclusive(t *testing.T) {
	tests := []struct {
		param string
		value float64
		tier  models.Tier
	}{
		{ParamPowerOutput, 10000, models.TierNormal},
		{ParamPowerOutput, 11900, models.TierNormal},
		{ParamPowerOutput, 9999, models.TierWarning},
		{ParamPowerOutput, 11901, models.TierTrouble},
		{ParamVSWR, 1.24, models.TierNormal},
		{ParamVSWR, 1.25, models.TierWarning},
		{ParamVSWR, 1.30, models.TierWarning},
		{ParamVSWR, 1.31, models.TierTrouble},
		{ParamVoltage, 215, models.TierNormal},
		{ParamVoltage, 225, models.TierNormal},
		{ParamVoltage, 214, models.TierWarning},
		{ParamVoltage, 226, models.TierWarning},
		{ParamTemperature, 20.9, models.TierNormal},
		{ParamTemperature, 21, models.TierWarning},
	}
	for _, tc := range tests {
		tier, _ := DefaultTable.Classify(tc.param, tc.value)
		assert.Equalf(t, tc.tier, tier, "%s = %v", tc.param, tc.value)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	tests := []struct {
		param string
		value float64
	}{
		{ParamPowerOutput, 25000},
		{ParamPowerOutput, -1},
		{ParamVSWR, 10.5},
		{ParamCN, 75},
		{ParamVoltage, 400},
		{ParamTemperature, 5},
		{"No Such Parameter", 100},
	}
	for _, tc := range tests {
		tier, advice := DefaultTable.Classify(tc.param, tc.value)
		assert.Equalf(t, models.TierNotApplicable, tier, "%s = %v", tc.param, tc.value)
		assert.Equal(t, NoAdvice, advice)
	}
}

func TestClassifyOverlapFirstDeclaredWins(t *testing.T) {
	table := Table{
		"X": {
			{Min: 0, Max: 10, Tier: models.TierNormal, Advice: "first"},
			{Min: 5, Max: 20, Tier: models.TierTrouble, Advice: "second"},
		},
	}
	tier, advice := table.Classify("X", 7)
	assert.Equal(t, models.TierNormal, tier)
	assert.Equal(t, "first", advice)

	tier, advice = table.Classify("X", 15)
	assert.Equal(t, models.TierTrouble, tier)
	assert.Equal(t, "second", advice)
}

func TestAnalyzeReading(t *testing.T) {
	r := models.Reading{
		Date:        models.NewDate(2025, 3, 10),
		Slot:        "06:00",
		PowerOutput: 10500,
		VSWR:        1.05,
		CN:          42,
		Margin:      22,
		VoltageR:    220,
		VoltageS:    212,
		VoltageT:    240,
		Temperature: 19,
	}

	got := DefaultTable.AnalyzeReading(r)
	require.Len(t, got, 8)

	byParam := map[string]Assessment{}
	for _, a := range got {
		byParam[a.Parameter] = a
	}
	assert.Equal(t, models.TierNormal, byParam[ParamPowerOutput].Tier)
	assert.Equal(t, models.TierNormal, byParam["Voltage R (V)"].Tier)
	assert.Equal(t, models.TierWarning, byParam["Voltage S (V)"].Tier)
	assert.Equal(t, models.TierTrouble, byParam["Voltage T (V)"].Tier)
	assert.Equal(t, 240.0, byParam["Voltage T (V)"].Value)
}
