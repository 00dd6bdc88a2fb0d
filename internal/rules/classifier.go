package rules

import (
	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

// NoAdvice is returned when no range matches the measured value.
const NoAdvice = "No recommendation"

// Classify maps a measured value to a severity tier and advisory text.
// Ranges are scanned in declared order and the first inclusive match
// wins, so an earlier-declared range shadows any later overlap. A value
// outside every range yields TierNotApplicable, a normal outcome.
func (t Table) Classify(param string, value float64) (models.Tier, string) {
	for _, r := range t[param] {
		if value >= r.Min && value <= r.Max {
			return r.Tier, r.Advice
		}
	}
	return models.TierNotApplicable, NoAdvice
}

// Assessment is one row of the automatic analysis shown to the
// operator after a reading is entered.
type Assessment struct {
	Parameter string      `json:"parameter"`
	Value     float64     `json:"value"`
	Tier      models.Tier `json:"tier"`
	Advice    string      `json:"advice"`
}

// AnalyzeReading classifies every monitored value of a reading. The
// voltage table is applied once per phase.
func (t Table) AnalyzeReading(r models.Reading) []Assessment {
	inputs := []struct {
		label string
		param string
		value float64
	}{
		{ParamPowerOutput, ParamPowerOutput, r.PowerOutput},
		{ParamVSWR, ParamVSWR, r.VSWR},
		{ParamCN, ParamCN, r.CN},
		{ParamMargin, ParamMargin, r.Margin},
		{"Voltage R (V)", ParamVoltage, r.VoltageR},
		{"Voltage S (V)", ParamVoltage, r.VoltageS},
		{"Voltage T (V)", ParamVoltage, r.VoltageT},
		{ParamTemperature, ParamTemperature, r.Temperature},
	}

	out := make([]Assessment, 0, len(inputs))
	for _, in := range inputs {
		tier, advice := t.Classify(in.param, in.value)
		out = append(out, Assessment{
			Parameter: in.label,
			Value:     in.value,
			Tier:      tier,
			Advice:    advice,
		})
	}
	return out
}
