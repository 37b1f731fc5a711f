package crafting

// Category is the crafting discipline a recipe belongs to (spec.md's
// CraftingCategory variant enumeration).
type Category string

// Recipe is an immutable crafting blueprint (spec.md section 3's
// value-type-with-builder guidance). Use NewRecipe to construct one; the
// returned value is never mutated in place.
type Recipe struct {
	ID             string
	ProtoID        string
	Category       Category
	MinTier        Tier
	BaseDifficulty float64
	BaseXP         float64
	Materials      map[string]int
	RequiredTools  map[string]struct{}
}

// RecipeOption configures a Recipe at construction time.
type RecipeOption func(*Recipe)

// WithMaterial adds a material requirement (proto_id -> qty).
func WithMaterial(protoID string, qty int) RecipeOption {
	return func(r *Recipe) { r.Materials[protoID] = qty }
}

// WithTool adds a required tool id.
func WithTool(toolID string) RecipeOption {
	return func(r *Recipe) { r.RequiredTools[toolID] = struct{}{} }
}

// NewRecipe constructs a Recipe with the given core fields and options.
func NewRecipe(id, protoID string, category Category, minTier Tier, baseDifficulty, baseXP float64, opts ...RecipeOption) Recipe {
	r := Recipe{
		ID:             id,
		ProtoID:        protoID,
		Category:       category,
		MinTier:        minTier,
		BaseDifficulty: baseDifficulty,
		BaseXP:         baseXP,
		Materials:      map[string]int{},
		RequiredTools:  map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// ItemPrototype is the shared, immutable schema for an item kind (spec.md
// section 3).
type ItemPrototype struct {
	ID            string
	Name          string
	Category      Category
	Rarity        string
	MaxDurability float64
	BaseValue     float64
	Weight        float64
	Stackable     bool
	StackCap      int
	Properties    map[string]string
}

// ItemInstance is a concrete crafted item referencing its prototype.
type ItemInstance struct {
	ProtoID          string
	CurrentDurability float64
	MaxDurability     float64
	Quantity          int
	EvolutionPoints   int
	OwnerID           string
	HistoryRefID      string
	Quality           Quality
	Properties        map[string]string
}

// NewItemInstance instantiates an item from a prototype with durability
// scaled by the quality's durability multiplier (spec.md section 4.6 step 6).
func NewItemInstance(proto ItemPrototype, ownerID string, q Quality) ItemInstance {
	maxDur := proto.MaxDurability * q.DurabilityMultiplier()
	return ItemInstance{
		ProtoID:           proto.ID,
		CurrentDurability: maxDur,
		MaxDurability:     maxDur,
		Quantity:          1,
		OwnerID:           ownerID,
		Quality:           q,
		Properties:        map[string]string{},
	}
}
