package models

// Canonical nutrient keys tracked across logs, snapshots, and targets.
const (
	NutrientCalories = "calories"
	NutrientProtein  = "protein"
	NutrientCarbs    = "carbs"
	NutrientFat      = "fat"
	NutrientFiber    = "fiber"
	NutrientSugar    = "sugar"
	NutrientSodium   = "sodium"
)

// TrackedNutrients is the fixed set every snapshot carries a metric for,
// in display order.
var TrackedNutrients = []string{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbs,
	NutrientFat,
	NutrientFiber,
	NutrientSugar,
	NutrientSodium,
}

// MacroNutrients are the subset counted for macro coverage.
var MacroNutrients = []string{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbs,
	NutrientFat,
}

// Nutrition profile provenance.
const (
	SourceLabelScan  = "label_scan"
	SourceBarcodeAPI = "barcode_api"
	SourceAIInferred = "ai_inferred"
	SourceManual     = "manual"
)
