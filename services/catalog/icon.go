package catalog

// Icon tags a category with one of a fixed set of pictograms that the
// storefront knows how to draw. Unknown tags fall back to IconDefault
// rather than breaking the category listing.
type Icon string

const (
	IconDefault        Icon = "package"
	IconTelevision     Icon = "tv"
	IconRefrigerator   Icon = "refrigerator"
	IconWashingMachine Icon = "washing-machine"
	IconMicrowave      Icon = "microwave"
	IconSpeaker        Icon = "speaker"
	IconSmartphone     Icon = "smartphone"
	IconLaptop         Icon = "laptop"
	IconFan            Icon = "fan"
	IconPower          Icon = "zap"
	IconSolar          Icon = "sun"
)

var iconLabels = map[Icon]string{
	IconDefault:        "General",
	IconTelevision:     "Televisions",
	IconRefrigerator:   "Refrigeration",
	IconWashingMachine: "Laundry",
	IconMicrowave:      "Kitchen",
	IconSpeaker:        "Audio",
	IconSmartphone:     "Phones",
	IconLaptop:         "Computing",
	IconFan:            "Cooling",
	IconPower:          "Power",
	IconSolar:          "Solar",
}

func (i Icon) IsValid() bool {
	_, exists := iconLabels[i]
	return exists
}

// Label returns the display name for the icon, falling back to the
// default for tags the table does not know.
func (i Icon) Label() string {
	label, exists := iconLabels[i]
	if !exists {
		return iconLabels[IconDefault]
	}
	return label
}

// Normalize maps unknown tags onto the default so that stored
// categories always carry a drawable icon.
func (i Icon) Normalize() Icon {
	if !i.IsValid() {
		return IconDefault
	}
	return i
}
