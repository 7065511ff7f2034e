package dto

// ClassifyRequest - запрос на классификацию координаты ("в какой я зоне")
type ClassifyRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
	// FallbackRadiusMeters - радиус поиска ближайшей зоны при отсутствии
	// вхождения; < 0 отключает поиск, nil - серверное значение по умолчанию
	FallbackRadiusMeters *float64 `json:"fallback_radius_meters,omitempty" validate:"omitempty,max=5000"`
}

// CheckInRequest - запрос классификации при чек-ине "я припарковался"
type CheckInRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
	// AccuracyMeters - горизонтальная точность GPS-фикса
	AccuracyMeters float64 `json:"accuracy_m" validate:"omitempty,min=0,max=1000"`
}

// RecommendationRequest - запрос рекомендаций парковки у точки назначения
type RecommendationRequest struct {
	Lat   float64 `json:"lat" validate:"min=-90,max=90"`
	Lng   float64 `json:"lng" validate:"min=-180,max=180"`
	Limit int     `json:"limit" validate:"omitempty,min=1,max=5"`
	// ConfirmedOnly - отбрасывать платные зоны без разрешённого тарифного кода
	ConfirmedOnly bool `json:"confirmed_only"`
	// FailWhenTooFar - жёсткий отказ вместо флага within_downtown_distance=false
	FailWhenTooFar bool `json:"fail_when_too_far"`
}
