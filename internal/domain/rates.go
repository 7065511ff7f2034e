package domain

import "strings"

// RateRule - правило кроссвока: сырые атрибуты зоны -> код оплаты по телефону
type RateRule struct {
	Zone        string `json:"zone"`
	MeterType   string `json:"meter_type"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// RateTable - статическая таблица правил, ключ - составная строка атрибутов
type RateTable struct {
	rules map[string]RateRule
}

// NewRateTable - построение таблицы. При дублировании ключа побеждает
// первое правило (порядок файла стабилен).
func NewRateTable(rules []RateRule) *RateTable {
	t := &RateTable{rules: make(map[string]RateRule, len(rules))}
	for _, r := range rules {
		key := rateKey(r.Zone, r.MeterType)
		if _, ok := t.rules[key]; !ok {
			t.rules[key] = r
		}
	}
	return t
}

// Resolve - точное совпадение по составному ключу зоны
func (t *RateTable) Resolve(zone, meterType string) (RateRule, bool) {
	r, ok := t.rules[rateKey(zone, meterType)]
	return r, ok
}

// Len - количество правил в таблице
func (t *RateTable) Len() int {
	return len(t.rules)
}

func rateKey(zone, meterType string) string {
	return strings.ToUpper(strings.TrimSpace(zone)) + "|" + strings.ToUpper(strings.TrimSpace(meterType))
}
