package lockin

// DimensionInfo describes one dimension for display
type DimensionInfo struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight,omitempty"`
}

// SchemaInfo describes a schema and its scoring rule
type SchemaInfo struct {
	Strategy   Schema          `json:"strategy"`
	Version    int             `json:"schemaVersion"`
	Scoring    string          `json:"scoring"`
	Dimensions []DimensionInfo `json:"dimensions"`
}

var dimensionText = map[string][2]string{
	DimUncertainty:    {"Uncertainty", "How uncertain the assessment is; widens the score range"},
	DimAnimals:        {"Animals Affected", "Population scale of animals the technology touches"},
	DimCanTheyFeel:    {"Can They Feel", "Evidence of sentience in the affected species"},
	DimSuffering:      {"Suffering", "Intensity of suffering imposed by the system"},
	DimGrowth:         {"Growth", "Commercial and investment momentum"},
	DimSupport:        {"Oversight Support", "Advocacy and regulatory support for oversight; higher lowers risk"},
	DimPathDependence: {"Path Dependence", "How self-reinforcing current choices are"},

	DimRegulatoryCapture:          {"Regulatory Capture", "How deeply the system is embedded in policy and regulation"},
	DimInfrastructureHardening:    {"Infrastructure Hardening", "Physical infrastructure purpose-built for the system"},
	DimSupplyChainStandardization: {"Supply Chain Standardization", "How standardized and optimized the supply chains are"},
	DimCorporateConsolidation:     {"Corporate Consolidation", "Degree of corporate control and concentration"},
	DimPathDependency:             {"Path Dependency", "How interconnected and self-reinforcing the system is"},
	DimAIAutomationEmbedding:      {"AI/Automation Embedding", "Integration of modern technology into the system"},
	DimInternationalExpansion:     {"International Expansion", "Global spread and harmonization of the system"},
	DimSlaughterInertia:           {"Slaughter/Processing Inertia", "Sunk costs in processing infrastructure"},
	DimBreedingLockIn:             {"Breeding/Genetics Lock-in", "Dependence on specialized genetic lines"},
}

// Describe returns display metadata for a schema
func Describe(s Schema, w WeightSet) SchemaInfo {
	info := SchemaInfo{Strategy: s, Version: s.Version()}

	weights := map[string]float64{}
	if s == SchemaWeighted7 {
		info.Scoring = "weighted sum; support counts inversely; uncertainty sets the range"
		weights = map[string]float64{
			DimAnimals: w.Animals, DimSuffering: w.Suffering, DimCanTheyFeel: w.CanTheyFeel,
			DimGrowth: w.Growth, DimSupport: w.SupportGap, DimPathDependence: w.PathDependence,
		}
	} else {
		info.Scoring = "arithmetic mean"
	}

	for _, k := range s.Keys() {
		text := dimensionText[k]
		di := DimensionInfo{Key: k, Label: text[0], Description: text[1]}
		if v, ok := weights[k]; ok {
			v := v
			di.Weight = &v
		}
		info.Dimensions = append(info.Dimensions, di)
	}
	return info
}

// Preset is a named example dimension set
type Preset struct {
	Name     string       `json:"name"`
	Strategy Schema       `json:"strategy"`
	Values   DimensionSet `json:"values"`
}

// Presets returns the built-in example assessments
func Presets() []Preset {
	eq := func(name string, rc, ih, sc, cc, pd, ai, ie, si, bl int) Preset {
		return Preset{Name: name, Strategy: SchemaEqual9, Values: DimensionSet{
			DimRegulatoryCapture:          rc,
			DimInfrastructureHardening:    ih,
			DimSupplyChainStandardization: sc,
			DimCorporateConsolidation:     cc,
			DimPathDependency:             pd,
			DimAIAutomationEmbedding:      ai,
			DimInternationalExpansion:     ie,
			DimSlaughterInertia:           si,
			DimBreedingLockIn:             bl,
		}}
	}
	return []Preset{
		eq("Insect Farming 2024", 65, 70, 60, 75, 65, 45, 70, 60, 65),
		eq("AI Shrimp 2020", 15, 20, 10, 25, 15, 30, 15, 10, 12),
		eq("Wildlife AI 2018", 5, 8, 3, 10, 5, 15, 8, 3, 4),
		eq("Lab-Grown Meat 2024", 25, 15, 10, 30, 20, 10, 25, 5, 5),
		eq("Precision Fermentation 2025", 30, 25, 20, 40, 30, 25, 40, 10, 0),
		eq("Cultured Leather 2024", 20, 10, 15, 35, 25, 20, 20, 10, 0),
		eq("Automated Dairy 2023", 70, 65, 75, 70, 80, 35, 60, 65, 70),
		eq("Vertical Aquaculture 2024", 40, 45, 35, 50, 40, 45, 30, 20, 15),
		eq("Chicken Industry (Baseline)", 90, 95, 90, 85, 95, 60, 85, 90, 95),
		eq("Early Research Tech", 5, 5, 5, 10, 5, 5, 5, 2, 2),
		eq("Reset to Middle", 50, 50, 50, 50, 50, 50, 50, 50, 50),
	}
}

// FindPreset looks a preset up by exact name
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
