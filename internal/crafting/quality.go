package crafting

// Quality is the post-success random tag applied to a crafted item,
// altering both its durability and the XP the crafter earns.
type Quality uint8

const (
	Masterwork Quality = iota
	HighQuality
	Standard
	Flawed
)

func (q Quality) String() string {
	switch q {
	case Masterwork:
		return "MASTERWORK"
	case HighQuality:
		return "HIGH_QUALITY"
	case Standard:
		return "STANDARD"
	case Flawed:
		return "FLAWED"
	}
	return "UNKNOWN"
}

// XPMultiplier and DurabilityMultiplier implement spec.md section 4.6 step
// 6's quality table.
func (q Quality) XPMultiplier() float64 {
	switch q {
	case Masterwork:
		return 2.0
	case HighQuality:
		return 1.5
	case Standard:
		return 1.0
	case Flawed:
		return 0.5
	}
	return 1.0
}

func (q Quality) DurabilityMultiplier() float64 {
	switch q {
	case Masterwork:
		return 1.3
	case HighQuality:
		return 1.15
	case Standard:
		return 1.0
	case Flawed:
		return 0.7
	}
	return 1.0
}

// RollQuality maps a cumulative uniform draw u ~ [0,1) to a Quality band:
// <0.05 MASTERWORK, <0.25 HIGH_QUALITY, <0.85 STANDARD, else FLAWED.
func RollQuality(u float64) Quality {
	switch {
	case u < 0.05:
		return Masterwork
	case u < 0.25:
		return HighQuality
	case u < 0.85:
		return Standard
	default:
		return Flawed
	}
}
