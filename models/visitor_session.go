package models

import "time"

// VisitorSession represents one visitor vehicle stay, from gate entry until
// checkout. Sessions are never deleted; closed sessions are kept for audit.
type VisitorSession struct {
	ID           string     `bson:"id" json:"id"`                                         // Unique session identifier (UUID)
	Plate        string     `bson:"plate" json:"plate"`                                   // Normalized (upper-case, trimmed) plate
	VehicleType  string     `bson:"vehicle_type,omitempty" json:"vehicleType,omitempty"`  // e.g. "car", "motorbike"
	Destination  string     `bson:"destination" json:"destination"`                       // Visited unit, e.g. "Tower 1 - Apt 301"
	SlotNumber   string     `bson:"slot_number,omitempty" json:"slotNumber,omitempty"`    // Assigned visitor slot, if any
	EntryTime    time.Time  `bson:"entry_time" json:"entryTime"`                          // Set at creation, immutable
	ExitTime     *time.Time `bson:"exit_time,omitempty" json:"exitTime,omitempty"`        // Set exactly once, at checkout
	Active       bool       `bson:"active" json:"active"`                                 // True from entry until checkout
	FeeCharged   int64      `bson:"fee_charged" json:"feeCharged"`                        // Set at checkout
	FeeBreakdown string     `bson:"fee_breakdown,omitempty" json:"feeBreakdown,omitempty"`
	ReceiptID    string     `bson:"receipt_id,omitempty" json:"receiptID,omitempty"`      // Receipt generated at checkout
	RegisteredBy string     `bson:"registered_by,omitempty" json:"registeredBy,omitempty"` // Gate post / guard identity
}
