package geojson_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/repository/geojson"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPaidZones(t *testing.T) {
	t.Run("success with mixed geometry types", func(t *testing.T) {
		path := writeFixture(t, "paid.geojson", `{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"properties": {"id": "paid-a", "zone": "M1", "meter_type": "single_space", "rate": "$2.00/hr", "district": "downtown", "hours": "9-18"},
					"geometry": {"type": "Polygon", "coordinates": [[[-120.664, 35.280], [-120.663, 35.280], [-120.663, 35.281], [-120.664, 35.281], [-120.664, 35.280]]]}
				},
				{
					"type": "Feature",
					"properties": {"id": "paid-b", "zone": "M2", "meter_type": "pay_station"},
					"geometry": {"type": "MultiPolygon", "coordinates": [
						[[[-120.660, 35.280], [-120.659, 35.280], [-120.659, 35.281], [-120.660, 35.280]]],
						[[[-120.658, 35.282], [-120.657, 35.282], [-120.657, 35.283], [-120.658, 35.282]]]
					]}
				}
			]
		}`)

		sources, err := geojson.LoadPaidZones(path, zap.NewNop())

		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, "paid-a", sources[0].ID)
		assert.Equal(t, "M1", sources[0].Attributes.Zone)
		assert.Equal(t, "single_space", sources[0].Attributes.MeterType)
		assert.Equal(t, "$2.00/hr", sources[0].Attributes.Rate)
		assert.Len(t, sources[0].Geometry.Polygons, 1)
		assert.Len(t, sources[1].Geometry.Polygons, 2)
	})

	t.Run("latitude and longitude follow geojson position order", func(t *testing.T) {
		path := writeFixture(t, "paid.geojson", `{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {"id": "paid-a"},
				"geometry": {"type": "Polygon", "coordinates": [[[-120.664, 35.280], [-120.663, 35.280], [-120.663, 35.281]]]}
			}]
		}`)

		sources, err := geojson.LoadPaidZones(path, zap.NewNop())

		require.NoError(t, err)
		require.Len(t, sources, 1)
		first := sources[0].Geometry.Polygons[0][0][0]
		assert.Equal(t, -120.664, first.Lng)
		assert.Equal(t, 35.280, first.Lat)
	})

	t.Run("features with bad geometry are skipped", func(t *testing.T) {
		path := writeFixture(t, "paid.geojson", `{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"properties": {"id": "no-geom"}
				},
				{
					"type": "Feature",
					"properties": {"id": "point-geom"},
					"geometry": {"type": "Point", "coordinates": [-120.663, 35.281]}
				},
				{
					"type": "Feature",
					"properties": {"id": "good"},
					"geometry": {"type": "Polygon", "coordinates": [[[-120.664, 35.280], [-120.663, 35.280], [-120.663, 35.281]]]}
				}
			]
		}`)

		sources, err := geojson.LoadPaidZones(path, zap.NewNop())

		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "good", sources[0].ID)
	})

	t.Run("features with bad properties are skipped", func(t *testing.T) {
		path := writeFixture(t, "paid.geojson", `{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"properties": {"id": 42},
					"geometry": {"type": "Polygon", "coordinates": [[[-120.664, 35.280], [-120.663, 35.280], [-120.663, 35.281]]]}
				}
			]
		}`)

		sources, err := geojson.LoadPaidZones(path, zap.NewNop())

		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("missing id is synthesized from feature index", func(t *testing.T) {
		path := writeFixture(t, "paid.geojson", `{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {"zone": "M1"},
				"geometry": {"type": "Polygon", "coordinates": [[[-120.664, 35.280], [-120.663, 35.280], [-120.663, 35.281]]]}
			}]
		}`)

		sources, err := geojson.LoadPaidZones(path, zap.NewNop())

		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "paid-0", sources[0].ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := geojson.LoadPaidZones(filepath.Join(t.TempDir(), "nope.geojson"), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("wrong collection type", func(t *testing.T) {
		path := writeFixture(t, "paid.geojson", `{"type": "Feature"}`)

		_, err := geojson.LoadPaidZones(path, zap.NewNop())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported type")
	})
}

func TestLoadPermitZones(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := writeFixture(t, "permit.geojson", `{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {"id": "permit-a", "area": "R1", "label": "Anholm", "district": "north", "hours": "always"},
				"geometry": {"type": "Polygon", "coordinates": [[[-120.670, 35.285], [-120.669, 35.285], [-120.669, 35.286]]]}
			}]
		}`)

		sources, err := geojson.LoadPermitZones(path, zap.NewNop())

		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "permit-a", sources[0].ID)
		assert.Equal(t, "R1", sources[0].Attributes.Area)
		assert.Equal(t, "Anholm", sources[0].Attributes.Label)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFixture(t, "permit.geojson", `{"type": "FeatureCollection", "features": [`)

		_, err := geojson.LoadPermitZones(path, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestLoadRateRules(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := writeFixture(t, "rates.json", `{
			"rules": [
				{"match": {"zone": "M1", "meter_type": "single_space"}, "code": "SLO-4071", "description": "Downtown meters"},
				{"match": {"zone": "M2", "meter_type": "pay_station"}, "code": "SLO-4072", "description": "Pay stations"}
			]
		}`)

		rules, err := geojson.LoadRateRules(path)

		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, "M1", rules[0].Zone)
		assert.Equal(t, "single_space", rules[0].MeterType)
		assert.Equal(t, "SLO-4071", rules[0].Code)
		assert.Equal(t, "Downtown meters", rules[0].Description)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := geojson.LoadRateRules(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFixture(t, "rates.json", `{"rules": 5}`)

		_, err := geojson.LoadRateRules(path)
		assert.Error(t, err)
	})
}
