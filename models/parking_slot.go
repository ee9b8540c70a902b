package models

// ParkingSlot is one numbered visitor parking space. Slots are created by the
// administration and are only ever toggled between occupied and free.
type ParkingSlot struct {
	Number      string `bson:"number" json:"number"`                               // Unique slot identifier, e.g. "C-01"
	Level       string `bson:"level,omitempty" json:"level,omitempty"`             // Basement / tower level
	Occupied    bool   `bson:"occupied" json:"occupied"`
	OccupantRef string `bson:"occupant_ref,omitempty" json:"occupantRef,omitempty"` // Plate reference while occupied
}
