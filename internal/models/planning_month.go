package models

import "time"

// PlanningMonth is one month of the forward planning window maintained by
// the scheduling task. Date is the first day of the month at UTC midnight.
type PlanningMonth struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"uniqueIndex;not null" json:"date"`
	Locked      bool      `gorm:"not null;default:false" json:"locked"`
	WorkingDays int       `json:"working_days"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PlanningMonth) TableName() string { return "planning_months" }
