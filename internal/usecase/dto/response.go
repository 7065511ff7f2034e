package dto

import (
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/zoneindex"
)

// ZoneSummary - зона в ответе API
type ZoneSummary struct {
	ID                string              `json:"id"`
	Category          domain.ZoneCategory `json:"category"`
	Code              string              `json:"code,omitempty"`
	Label             string              `json:"label"`
	District          string              `json:"district,omitempty"`
	Hours             string              `json:"hours,omitempty"`
	Provisional       bool                `json:"provisional,omitempty"`
	ProvisionalReason string              `json:"provisional_reason,omitempty"`
}

// ClassifyResponse - результат классификации координаты
type ClassifyResponse struct {
	Match          domain.MatchType `json:"match"`
	DistanceMeters *float64         `json:"distance_meters"`
	Zone           *ZoneSummary     `json:"zone"`
}

// CheckInResponse - результат классификации чек-ина
type CheckInResponse struct {
	Match          domain.MatchType `json:"match"`
	DistanceMeters *float64         `json:"distance_meters"`
	Zone           *ZoneSummary     `json:"zone"`
	// AppliedRadiusMeters - фактический радиус поиска, выведенный из точности
	AppliedRadiusMeters float64 `json:"applied_radius_meters"`
}

// RecommendationItem - одна рекомендация парковки
type RecommendationItem struct {
	Zone           ZoneSummary  `json:"zone"`
	DistanceMeters float64      `json:"distance_meters"`
	NearestPoint   domain.Point `json:"nearest_point"`
}

// RecommendationResponse - итоговый набор рекомендаций для точки назначения
type RecommendationResponse struct {
	Paid                   []RecommendationItem `json:"paid"`
	Residential            []RecommendationItem `json:"residential"`
	WithinDowntownDistance bool                 `json:"within_downtown_distance"`
	NearestPaidMeters      float64              `json:"nearest_paid_meters"`
	Warnings               []string             `json:"warnings,omitempty"`
}

// ConvertPaidZone - платная зона -> ZoneSummary
func ConvertPaidZone(rec *zoneindex.Record[domain.PaidZoneAttributes]) ZoneSummary {
	label := rec.CodeLabel
	if label == "" {
		label = rec.Attributes.Rate
	}
	return ZoneSummary{
		ID:                rec.ID,
		Category:          domain.CategoryPaid,
		Code:              rec.Code,
		Label:             label,
		District:          rec.Attributes.District,
		Hours:             rec.Attributes.Hours,
		Provisional:       rec.Provisional,
		ProvisionalReason: rec.ProvisionalReason,
	}
}

// ConvertPermitZone - резидентная зона -> ZoneSummary
func ConvertPermitZone(rec *zoneindex.Record[domain.PermitZoneAttributes]) ZoneSummary {
	return ZoneSummary{
		ID:       rec.ID,
		Category: domain.CategoryResidential,
		Code:     rec.Attributes.Area,
		Label:    rec.Attributes.Label,
		District: rec.Attributes.District,
		Hours:    rec.Attributes.Hours,
	}
}
