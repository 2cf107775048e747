package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// hsaContributionKeys captures both spellings of the employee contribution.
// Older callers send "contribution"; the canonical key wins when both are present.
type hsaContributionKeys struct {
	EmployeeContribution *decimal.Decimal `yaml:"employee_contribution" json:"employee_contribution"`
	Contribution         *decimal.Decimal `yaml:"contribution" json:"contribution"`
}

func (k hsaContributionKeys) resolve() decimal.Decimal {
	if k.EmployeeContribution != nil {
		return *k.EmployeeContribution
	}
	if k.Contribution != nil {
		return *k.Contribution
	}
	return decimal.Zero
}

// hsaInputsAlias has HSAInputs' fields without its methods
type hsaInputsAlias HSAInputs

// UnmarshalJSON decodes HSAInputs and normalizes the legacy contribution key
func (in *HSAInputs) UnmarshalJSON(data []byte) error {
	var aux hsaInputsAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var keys hsaContributionKeys
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*in = HSAInputs(aux)
	in.EmployeeContribution = keys.resolve()
	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for HSAInputs
func (in *HSAInputs) UnmarshalYAML(value *yaml.Node) error {
	var aux hsaInputsAlias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	var keys hsaContributionKeys
	if err := value.Decode(&keys); err != nil {
		return err
	}
	*in = HSAInputs(aux)
	in.EmployeeContribution = keys.resolve()
	return nil
}
