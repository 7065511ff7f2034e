package domain

// ZoneCategory - тип парковочной зоны
type ZoneCategory string

const (
	CategoryPaid        ZoneCategory = "paid"
	CategoryResidential ZoneCategory = "residential"
)

// MatchType - результат классификации координаты
type MatchType string

const (
	MatchInside  MatchType = "inside"
	MatchNearest MatchType = "nearest"
	MatchNone    MatchType = "none"
)

// PaidZoneAttributes - атрибуты платной (метровой) зоны
type PaidZoneAttributes struct {
	Zone      string `json:"zone"`
	MeterType string `json:"meter_type"`
	Rate      string `json:"rate"`
	District  string `json:"district"`
	Hours     string `json:"hours"`
}

// PermitZoneAttributes - атрибуты зоны резидентных разрешений
type PermitZoneAttributes struct {
	Area     string `json:"area"`
	Label    string `json:"label"`
	District string `json:"district"`
	Hours    string `json:"hours"`
}
