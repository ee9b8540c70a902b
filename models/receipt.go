package models

import "time"

// ParkingReceipt is the immutable record generated at vehicle checkout.
// Exactly one receipt exists per closed session.
type ParkingReceipt struct {
	ID             string    `bson:"id" json:"id"`
	SessionID      string    `bson:"session_id" json:"sessionID"`
	Plate          string    `bson:"plate" json:"plate"`
	Destination    string    `bson:"destination,omitempty" json:"destination,omitempty"`
	EntryTime      time.Time `bson:"entry_time" json:"entryTime"`
	ExitTime       time.Time `bson:"exit_time" json:"exitTime"`
	ElapsedMinutes int       `bson:"elapsed_minutes" json:"elapsedMinutes"`
	ElapsedHours   int       `bson:"elapsed_hours" json:"elapsedHours"`
	Fee            int64     `bson:"fee" json:"fee"`
	Breakdown      string    `bson:"breakdown" json:"breakdown"`
	GeneratedAt    time.Time `bson:"generated_at" json:"generatedAt"`
}
