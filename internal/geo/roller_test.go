package geo

import (
	"testing"

	"opsmetrics-service/internal/model"
)

func located(province, district, sector string) model.NormalizedRecord {
	rec := model.NormalizedRecord{ID: "r", Kind: model.KindReport}
	if province != "" {
		rec.Province = &province
	}
	if district != "" {
		rec.District = &district
	}
	if sector != "" {
		rec.Sector = &sector
	}
	return rec
}

func provinceCount(summary model.GeoSummary, name string) (int, bool) {
	for _, p := range summary.Provinces {
		if p.Name == name {
			return p.Count, true
		}
	}
	return 0, false
}

func TestRollAllProvincesAlwaysPresent(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Kigali City", "", ""),
		located("Kigali City", "", ""),
		located("Kigali City", "", ""),
		located("Eastern Province", "", ""),
	}

	summary := Roll(records, model.GeoFilter{})

	if len(summary.Provinces) != len(Provinces) {
		t.Fatalf("expected %d provinces, got %d", len(Provinces), len(summary.Provinces))
	}
	for i, name := range Provinces {
		if summary.Provinces[i].Name != name {
			t.Fatalf("expected province %q at position %d, got %q", name, i, summary.Provinces[i].Name)
		}
	}

	tests := []struct {
		name string
		want int
	}{
		{"Kigali City", 3},
		{"Eastern Province", 1},
		{"Northern Province", 0},
		{"Southern Province", 0},
		{"Western Province", 0},
	}
	for _, tt := range tests {
		got, ok := provinceCount(summary, tt.name)
		if !ok {
			t.Fatalf("province %q missing from output", tt.name)
		}
		if got != tt.want {
			t.Fatalf("province %q: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestRollUnknownProvinceExcludedFromProvinceTally(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Atlantis", "Lost District", ""),
	}

	summary := Roll(records, model.GeoFilter{})

	for _, p := range summary.Provinces {
		if p.Name == "Atlantis" {
			t.Fatalf("unknown province must not appear in output")
		}
		if p.Count != 0 {
			t.Fatalf("expected zero counts, got %d for %q", p.Count, p.Name)
		}
	}
	// The district level still counts the record.
	if len(summary.Districts) != 1 || summary.Districts[0].Count != 1 {
		t.Fatalf("expected district counted despite unknown province, got %+v", summary.Districts)
	}
}

func TestRollDistrictsCarryParentProvince(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Kigali City", "Gasabo", "Remera"),
		located("Kigali City", "Gasabo", "Kimironko"),
		located("Eastern Province", "Rwamagana", ""),
	}

	summary := Roll(records, model.GeoFilter{})

	if len(summary.Districts) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(summary.Districts))
	}
	if summary.Districts[0].Name != "Gasabo" || summary.Districts[0].Count != 2 {
		t.Fatalf("expected Gasabo first with count 2, got %+v", summary.Districts[0])
	}
	if summary.Districts[0].Province != "Kigali City" {
		t.Fatalf("expected parent province on district, got %q", summary.Districts[0].Province)
	}
	if len(summary.Sectors) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(summary.Sectors))
	}
	for _, s := range summary.Sectors {
		if s.District != "Gasabo" || s.Province != "Kigali City" {
			t.Fatalf("expected full parent path on sector, got %+v", s)
		}
	}
}

func TestRollCascadingProvinceFilter(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Kigali City", "Gasabo", "Remera"),
		located("Eastern Province", "Rwamagana", "Kigabiro"),
		located("", "Orphan District", "Orphan Sector"),
	}

	summary := Roll(records, model.GeoFilter{Province: "Kigali City"})

	if len(summary.Districts) != 1 || summary.Districts[0].Name != "Gasabo" {
		t.Fatalf("expected only Gasabo under Kigali City, got %+v", summary.Districts)
	}
	if len(summary.Sectors) != 1 || summary.Sectors[0].Name != "Remera" {
		t.Fatalf("expected only Remera under Kigali City, got %+v", summary.Sectors)
	}

	// Province counts stay global so the picker still shows everything.
	if got, _ := provinceCount(summary, "Eastern Province"); got != 1 {
		t.Fatalf("expected global province counts, got %d", got)
	}
}

func TestRollDistrictFilterScopesSectors(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Kigali City", "Gasabo", "Remera"),
		located("Kigali City", "Nyarugenge", "Kiyovu"),
	}

	summary := Roll(records, model.GeoFilter{Province: "Kigali City", District: "Gasabo"})

	if len(summary.Sectors) != 1 || summary.Sectors[0].Name != "Remera" {
		t.Fatalf("expected only Remera under Gasabo, got %+v", summary.Sectors)
	}
	if len(summary.Districts) != 2 {
		t.Fatalf("district level is scoped by province only, got %+v", summary.Districts)
	}
}

func TestRollDistrictFilterWithoutProvinceIsIgnored(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Kigali City", "Gasabo", "Remera"),
		located("Kigali City", "Nyarugenge", "Kiyovu"),
	}

	// A district selection with no province is not a contiguous path.
	summary := Roll(records, model.GeoFilter{District: "Gasabo"})

	if len(summary.Sectors) != 2 {
		t.Fatalf("expected unscoped sectors, got %+v", summary.Sectors)
	}
}

func TestRollMissingLevels(t *testing.T) {
	records := []model.NormalizedRecord{
		located("", "", "Remera"),             // sector only
		located("Kigali City", "", "Remera"),  // no district
		located("Kigali City", "Gasabo", ""),  // no sector
	}

	summary := Roll(records, model.GeoFilter{})

	if got, _ := provinceCount(summary, "Kigali City"); got != 2 {
		t.Fatalf("expected 2 records at province level, got %d", got)
	}
	if len(summary.Districts) != 1 || summary.Districts[0].Count != 1 {
		t.Fatalf("expected one district tally, got %+v", summary.Districts)
	}
	if len(summary.Sectors) != 1 || summary.Sectors[0].Count != 2 {
		t.Fatalf("expected sector counted for both records, got %+v", summary.Sectors)
	}
	if summary.Sectors[0].District != "" {
		t.Fatalf("no record carried a district for Remera; link must stay empty, got %q", summary.Sectors[0].District)
	}
}

func TestRollSectorSumNeverExceedsDistrict(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Kigali City", "Gasabo", "Remera"),
		located("Kigali City", "Gasabo", "Kimironko"),
		located("Kigali City", "Gasabo", ""),
	}

	summary := Roll(records, model.GeoFilter{})

	districtTotal := summary.Districts[0].Count
	sectorSum := 0
	for _, s := range summary.Sectors {
		if s.District == "Gasabo" {
			sectorSum += s.Count
		}
	}
	if sectorSum > districtTotal {
		t.Fatalf("sector sum %d exceeds district count %d", sectorSum, districtTotal)
	}
}

func TestRollDeterministicOrdering(t *testing.T) {
	records := []model.NormalizedRecord{
		located("Kigali City", "Beta", ""),
		located("Kigali City", "Alpha", ""),
		located("Kigali City", "Alpha", ""),
		located("Kigali City", "Gamma", ""),
	}

	summary := Roll(records, model.GeoFilter{})

	wantOrder := []string{"Alpha", "Beta", "Gamma"}
	for i, name := range wantOrder {
		if summary.Districts[i].Name != name {
			t.Fatalf("expected district %q at %d, got %q", name, i, summary.Districts[i].Name)
		}
	}
}
