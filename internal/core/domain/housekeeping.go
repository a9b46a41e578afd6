package domain

import "time"

// HousekeepingTaskType classifies a cleaning request.
type HousekeepingTaskType string

// TaskCheckoutClean is requested whenever a guest leaves a room, at check-out or on an
// in-house room move.
const TaskCheckoutClean HousekeepingTaskType = "CHECKOUT_CLEAN"

// HousekeepingTaskStatus tracks a task through the cleaning team.
type HousekeepingTaskStatus string

const (
	TaskPending    HousekeepingTaskStatus = "PENDING"
	TaskInProgress HousekeepingTaskStatus = "IN_PROGRESS"
	TaskDone       HousekeepingTaskStatus = "DONE"
)

// HousekeepingTask is a cleaning request; at most one PENDING task exists per room and type.
type HousekeepingTask struct {
	TaskID        string                 `json:"taskID"`
	RoomID        string                 `json:"roomID"`
	ReservationID string                 `json:"reservationID"`
	Type          HousekeepingTaskType   `json:"type"`
	Status        HousekeepingTaskStatus `json:"status"`
	Priority      string                 `json:"priority"`
	RequestedAt   time.Time              `json:"requestedAt"`
	RequestedBy   string                 `json:"requestedBy"`
}
