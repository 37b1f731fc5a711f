package structure

// TaxRegistry tracks every structure's TaxRecord and runs enforcement
// across all of them each time it is due, collecting seizures.
type TaxRegistry struct {
	Params  TaxParams
	Records map[string]*TaxRecord
}

// NewTaxRegistry creates an empty registry with the given parameters.
func NewTaxRegistry(p TaxParams) *TaxRegistry {
	return &TaxRegistry{Params: p, Records: map[string]*TaxRecord{}}
}

// Register adds a structure's tax record, keyed by structure id.
func (r *TaxRegistry) Register(structureID string) *TaxRecord {
	t := &TaxRecord{StructureID: structureID}
	r.Records[structureID] = t
	return t
}

// UpdateAll runs UpdateEnforcement for every registered structure at tick
// now, returning the ids classified SEIZE (spec.md section 4.8: "SEIZE
// yields the structure id to the returned list").
func (r *TaxRegistry) UpdateAll(now uint64) []string {
	var seized []string
	for id, rec := range r.Records {
		if rec.UpdateEnforcement(now, r.Params) == Seize {
			seized = append(seized, id)
		}
	}
	return seized
}
