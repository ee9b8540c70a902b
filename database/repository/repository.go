package repository

import (
	receiptRepo "conjunto/database/repository/receipt"
	slotRepo "conjunto/database/repository/slot"
	vehicleRepo "conjunto/database/repository/vehicle"
)

// Re-export the SessionRepository interface and constructors.
type SessionRepository = vehicleRepo.SessionRepository

var NewMongoSessionRepo = vehicleRepo.NewMongoSessionRepo
var NewMemorySessionRepo = vehicleRepo.NewMemorySessionRepo

// Re-export the SlotRepository interface and constructors.
type SlotRepository = slotRepo.SlotRepository

var NewMongoSlotRepo = slotRepo.NewMongoSlotRepo
var NewMemorySlotRepo = slotRepo.NewMemorySlotRepo

// Re-export the ReceiptRepository interface and constructors.
type ReceiptRepository = receiptRepo.ReceiptRepository

var NewMongoReceiptRepo = receiptRepo.NewMongoReceiptRepo
var NewMemoryReceiptRepo = receiptRepo.NewMemoryReceiptRepo
