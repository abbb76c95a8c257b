package repository

import (
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LookupKind tells how a dish identifier is matched against stored documents.
type LookupKind int

const (
	LookupObjectID LookupKind = iota
	LookupLegacyID
)

func (k LookupKind) String() string {
	switch k {
	case LookupObjectID:
		return "object_id"
	case LookupLegacyID:
		return "legacy_id"
	default:
		return "unknown"
	}
}

// Lookup is one way of locating a dish.
type Lookup struct {
	Kind     LookupKind
	ObjectID primitive.ObjectID
	LegacyID int64
}

// Filter returns the MongoDB filter for the lookup.
func (l Lookup) Filter() bson.M {
	if l.Kind == LookupObjectID {
		return bson.M{"_id": l.ObjectID}
	}
	return bson.M{"id": l.LegacyID}
}

// Matches reports whether a stored document satisfies the lookup.
func (l Lookup) Matches(doc map[string]interface{}) bool {
	if l.Kind == LookupObjectID {
		oid, ok := doc["_id"].(primitive.ObjectID)
		return ok && oid == l.ObjectID
	}
	n, ok := numericValue(doc["id"])
	return ok && n == float64(l.LegacyID)
}

// DishID is a parsed dish identifier.
type DishID struct {
	Raw     string
	Lookups []Lookup
}

// ParseDishID parses raw into the lookups to attempt, in order: object id, then
// legacy numeric id. A raw value that parses as neither has no lookups and can
// never resolve.
func ParseDishID(raw string) DishID {
	id := DishID{Raw: raw}

	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		id.Lookups = append(id.Lookups, Lookup{Kind: LookupObjectID, ObjectID: oid})
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		id.Lookups = append(id.Lookups, Lookup{Kind: LookupLegacyID, LegacyID: n})
	}

	return id
}

// Resolve calls try with each lookup until one matches. A miss on every lookup
// yields ErrDishNotFound. An error from try stops resolution and is returned as is.
func (id DishID) Resolve(try func(Lookup) (bool, error)) error {
	for _, lookup := range id.Lookups {
		found, err := try(lookup)
		if err != nil {
			return err
		}
		if found {
			return nil
		}
	}
	return ErrDishNotFound
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
