package geojson

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/parking-microservice/internal/domain"
)

// rateRuleFile - формат файла кроссвока тарифов
type rateRuleFile struct {
	Rules []rateRuleEntry `json:"rules"`
}

type rateRuleEntry struct {
	Match struct {
		Zone      string `json:"zone"`
		MeterType string `json:"meter_type"`
	} `json:"match"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// LoadRateRules - загрузка упорядоченной таблицы правил тарифного кроссвока
func LoadRateRules(path string) ([]domain.RateRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate rules %q: %w", path, err)
	}

	var file rateRuleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rate rules %q: %w", path, err)
	}

	rules := make([]domain.RateRule, 0, len(file.Rules))
	for _, e := range file.Rules {
		rules = append(rules, domain.RateRule{
			Zone:        e.Match.Zone,
			MeterType:   e.Match.MeterType,
			Code:        e.Code,
			Description: e.Description,
		})
	}

	return rules, nil
}
