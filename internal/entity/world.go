package entity

// EntityID is a stable reference to an entity within a World. Unlike the
// slotmap keys of the pre-distillation source, IDs here are a monotonic
// counter: this module never reuses a removed entity's ID, so a stale ID
// simply fails IsValid rather than risking silent aliasing.
type EntityID uint64

// EntityType categorizes an entity for filtering and diagnostics.
type EntityType int

const (
	EntityVector EntityType = iota
	EntityFeature
)

type entityMeta struct {
	entityType EntityType
}

// World is the top-level entity-component store the ingestion systems
// populate: one entity per VRID or FRID record, with sparse per-entity
// component tables and NAME/FOID indices for cross-reference resolution.
//
// Reference: original_source/s57-interp/src/ecs.rs (World), spec §3.2/§4.6.
type World struct {
	entities map[EntityID]entityMeta
	nextID   EntityID

	NameIndex map[Name]EntityID
	FoidIndex map[FoidKey]EntityID

	Dataset *DatasetParams

	VectorMeta      map[EntityID]*VectorMeta
	VectorTopology  map[EntityID]*VectorTopology
	ExactPositions  map[EntityID]*ExactPositions
	FeatureMeta     map[EntityID]*FeatureMeta
	Attributes      map[EntityID]*Attributes
	FeaturePointers map[EntityID]*FeaturePointers

	Diagnostics []Diagnostic
}

// NewWorld returns an empty World ready for ingestion.
func NewWorld() *World {
	return &World{
		entities:        map[EntityID]entityMeta{},
		NameIndex:       map[Name]EntityID{},
		FoidIndex:       map[FoidKey]EntityID{},
		VectorMeta:      map[EntityID]*VectorMeta{},
		VectorTopology:  map[EntityID]*VectorTopology{},
		ExactPositions:  map[EntityID]*ExactPositions{},
		FeatureMeta:     map[EntityID]*FeatureMeta{},
		Attributes:      map[EntityID]*Attributes{},
		FeaturePointers: map[EntityID]*FeaturePointers{},
	}
}

// CreateEntity allocates a new entity of the given type.
func (w *World) CreateEntity(entityType EntityType) EntityID {
	w.nextID++
	id := w.nextID
	w.entities[id] = entityMeta{entityType: entityType}
	return id
}

// IsValid reports whether entity was created in this World. A World never
// removes entities.
func (w *World) IsValid(entity EntityID) bool {
	_, ok := w.entities[entity]
	return ok
}

// EntityType returns the type of entity, and whether it exists.
func (w *World) EntityType(entity EntityID) (EntityType, bool) {
	m, ok := w.entities[entity]
	return m.entityType, ok
}

// EntitiesOfType returns every live entity of the given type. Order is not
// significant to callers, so this walks the map directly.
func (w *World) EntitiesOfType(entityType EntityType) []EntityID {
	var out []EntityID
	for id, m := range w.entities {
		if m.entityType == entityType {
			out = append(out, id)
		}
	}
	return out
}

// VectorByName resolves a NAME key to its vector entity, if one has been
// ingested.
func (w *World) VectorByName(name Name) (EntityID, bool) {
	id, ok := w.NameIndex[name]
	return id, ok
}

// FeatureByFoid resolves an LNAM/FOID key to its feature entity, if one has
// been ingested.
func (w *World) FeatureByFoid(foid FoidKey) (EntityID, bool) {
	id, ok := w.FoidIndex[foid]
	return id, ok
}

// AddDiagnostic records a non-fatal condition observed for entity.
func (w *World) AddDiagnostic(kind DiagnosticKind, entity EntityID, message string) {
	w.Diagnostics = append(w.Diagnostics, Diagnostic{Kind: kind, Entity: entity, Message: message})
}
