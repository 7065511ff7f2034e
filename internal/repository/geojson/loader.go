// Package geojson загружает статические наборы парковочных зон из GeoJSON
// файлов, поставляемых вместе с сервисом. Загрузка выполняется один раз при
// старте процесса; обновление данных требует рестарта.
package geojson

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/zoneindex"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
	Geometry   *geometry       `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// paidProperties - свойства фичи платной зоны
type paidProperties struct {
	ID        string `json:"id"`
	Zone      string `json:"zone"`
	MeterType string `json:"meter_type"`
	Rate      string `json:"rate"`
	District  string `json:"district"`
	Hours     string `json:"hours"`
}

// permitProperties - свойства фичи зоны резидентных разрешений
type permitProperties struct {
	ID       string `json:"id"`
	Area     string `json:"area"`
	Label    string `json:"label"`
	District string `json:"district"`
	Hours    string `json:"hours"`
}

// LoadPaidZones - загрузка платных зон из GeoJSON FeatureCollection.
// Фичи с отсутствующей или нераспарсиваемой геометрией исключаются целиком
// с одним предупреждением в лог на фичу.
func LoadPaidZones(path string, logger *zap.Logger) ([]zoneindex.Source[domain.PaidZoneAttributes], error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	sources := make([]zoneindex.Source[domain.PaidZoneAttributes], 0, len(fc.Features))
	for i, f := range fc.Features {
		var props paidProperties
		if len(f.Properties) > 0 {
			if err := json.Unmarshal(f.Properties, &props); err != nil {
				logger.Warn("Paid zone feature skipped: bad properties",
					zap.String("path", path), zap.Int("feature", i), zap.Error(err))
				continue
			}
		}

		id := props.ID
		if id == "" {
			id = fmt.Sprintf("paid-%d", i)
		}

		geom, err := parseGeometry(f.Geometry)
		if err != nil {
			logger.Warn("Paid zone feature skipped: bad geometry",
				zap.String("path", path), zap.String("zone_id", id), zap.Error(err))
			continue
		}

		sources = append(sources, zoneindex.Source[domain.PaidZoneAttributes]{
			ID:       id,
			Geometry: geom,
			Attributes: domain.PaidZoneAttributes{
				Zone:      props.Zone,
				MeterType: props.MeterType,
				Rate:      props.Rate,
				District:  props.District,
				Hours:     props.Hours,
			},
		})
	}

	logger.Info("Paid zones loaded",
		zap.String("path", path),
		zap.Int("features", len(fc.Features)),
		zap.Int("zones", len(sources)),
	)
	return sources, nil
}

// LoadPermitZones - загрузка зон резидентных разрешений из GeoJSON
func LoadPermitZones(path string, logger *zap.Logger) ([]zoneindex.Source[domain.PermitZoneAttributes], error) {
	fc, err := readFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	sources := make([]zoneindex.Source[domain.PermitZoneAttributes], 0, len(fc.Features))
	for i, f := range fc.Features {
		var props permitProperties
		if len(f.Properties) > 0 {
			if err := json.Unmarshal(f.Properties, &props); err != nil {
				logger.Warn("Permit zone feature skipped: bad properties",
					zap.String("path", path), zap.Int("feature", i), zap.Error(err))
				continue
			}
		}

		id := props.ID
		if id == "" {
			id = fmt.Sprintf("permit-%d", i)
		}

		geom, err := parseGeometry(f.Geometry)
		if err != nil {
			logger.Warn("Permit zone feature skipped: bad geometry",
				zap.String("path", path), zap.String("zone_id", id), zap.Error(err))
			continue
		}

		sources = append(sources, zoneindex.Source[domain.PermitZoneAttributes]{
			ID:       id,
			Geometry: geom,
			Attributes: domain.PermitZoneAttributes{
				Area:     props.Area,
				Label:    props.Label,
				District: props.District,
				Hours:    props.Hours,
			},
		})
	}

	logger.Info("Permit zones loaded",
		zap.String("path", path),
		zap.Int("features", len(fc.Features)),
		zap.Int("zones", len(sources)),
	)
	return sources, nil
}

func readFeatureCollection(path string) (*featureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geojson %q: %w", path, err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson %q: %w", path, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("geojson %q: unsupported type %q", path, fc.Type)
	}

	return &fc, nil
}

// parseGeometry - преобразование GeoJSON геометрии (координаты [lng, lat])
// в доменную. Поддерживаются Polygon и MultiPolygon.
func parseGeometry(g *geometry) (domain.Geometry, error) {
	if g == nil {
		return domain.Geometry{}, fmt.Errorf("missing geometry")
	}

	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return domain.Geometry{}, fmt.Errorf("bad Polygon coordinates: %w", err)
		}
		poly, err := convertPolygon(coords)
		if err != nil {
			return domain.Geometry{}, err
		}
		return domain.Geometry{Polygons: []domain.Polygon{poly}}, nil

	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return domain.Geometry{}, fmt.Errorf("bad MultiPolygon coordinates: %w", err)
		}
		polygons := make([]domain.Polygon, 0, len(coords))
		for _, pc := range coords {
			poly, err := convertPolygon(pc)
			if err != nil {
				return domain.Geometry{}, err
			}
			polygons = append(polygons, poly)
		}
		if len(polygons) == 0 {
			return domain.Geometry{}, fmt.Errorf("empty MultiPolygon")
		}
		return domain.Geometry{Polygons: polygons}, nil

	default:
		return domain.Geometry{}, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func convertPolygon(coords [][][]float64) (domain.Polygon, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("polygon without rings")
	}

	poly := make(domain.Polygon, 0, len(coords))
	for _, ringCoords := range coords {
		if len(ringCoords) == 0 {
			return nil, fmt.Errorf("empty ring")
		}
		ring := make(domain.LinearRing, 0, len(ringCoords))
		for _, pos := range ringCoords {
			if len(pos) < 2 {
				return nil, fmt.Errorf("position with %d coordinates", len(pos))
			}
			ring = append(ring, domain.Point{Lng: pos[0], Lat: pos[1]})
		}
		poly = append(poly, ring)
	}

	return poly, nil
}
