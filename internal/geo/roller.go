// Package geo rolls record counts through the province, district and sector
// hierarchy with cascading filter scoping for drill-downs.
package geo

import (
	"sort"

	"opsmetrics-service/internal/model"
)

// Provinces is the fixed administrative set. Every province appears in every
// roll-up, zero count included, in this order.
var Provinces = []string{
	"Kigali City",
	"Eastern Province",
	"Northern Province",
	"Southern Province",
	"Western Province",
}

type nodeTally struct {
	count    int
	district string
	province string
}

// Roll aggregates counts at all three levels. Province counts are always
// global; filter.Province scopes the district and sector tallies and
// filter.District further scopes sectors. A record missing a level is skipped
// at that level only.
func Roll(records []model.NormalizedRecord, filter model.GeoFilter) model.GeoSummary {
	filter = filter.Normalize()

	provinceCounts := make(map[string]int, len(Provinces))
	for _, name := range Provinces {
		provinceCounts[name] = 0
	}

	districts := make(map[string]*nodeTally)
	sectors := make(map[string]*nodeTally)

	for _, rec := range records {
		if rec.Province != nil {
			if _, known := provinceCounts[*rec.Province]; known {
				provinceCounts[*rec.Province]++
			}
		}

		inProvince := filter.Province == "" || (rec.Province != nil && *rec.Province == filter.Province)
		if rec.District != nil && inProvince {
			tally := districts[*rec.District]
			if tally == nil {
				tally = &nodeTally{}
				districts[*rec.District] = tally
			}
			tally.count++
			if tally.province == "" && rec.Province != nil {
				tally.province = *rec.Province
			}
		}

		inDistrict := filter.District == "" || (rec.District != nil && *rec.District == filter.District)
		if rec.Sector != nil && inProvince && inDistrict {
			tally := sectors[*rec.Sector]
			if tally == nil {
				tally = &nodeTally{}
				sectors[*rec.Sector] = tally
			}
			tally.count++
			// Parent links come only from records that actually carry the
			// parent level, never inferred.
			if tally.district == "" && rec.District != nil {
				tally.district = *rec.District
				if rec.Province != nil {
					tally.province = *rec.Province
				}
			}
		}
	}

	summary := model.GeoSummary{
		Provinces: make([]model.ProvinceCount, 0, len(Provinces)),
		Districts: make([]model.DistrictCount, 0, len(districts)),
		Sectors:   make([]model.SectorCount, 0, len(sectors)),
	}

	for _, name := range Provinces {
		summary.Provinces = append(summary.Provinces, model.ProvinceCount{Name: name, Count: provinceCounts[name]})
	}

	for name, tally := range districts {
		summary.Districts = append(summary.Districts, model.DistrictCount{
			Name:     name,
			Province: tally.province,
			Count:    tally.count,
		})
	}
	sort.Slice(summary.Districts, func(i, j int) bool {
		if summary.Districts[i].Count != summary.Districts[j].Count {
			return summary.Districts[i].Count > summary.Districts[j].Count
		}
		return summary.Districts[i].Name < summary.Districts[j].Name
	})

	for name, tally := range sectors {
		summary.Sectors = append(summary.Sectors, model.SectorCount{
			Name:     name,
			District: tally.district,
			Province: tally.province,
			Count:    tally.count,
		})
	}
	sort.Slice(summary.Sectors, func(i, j int) bool {
		if summary.Sectors[i].Count != summary.Sectors[j].Count {
			return summary.Sectors[i].Count > summary.Sectors[j].Count
		}
		return summary.Sectors[i].Name < summary.Sectors[j].Name
	})

	return summary
}
