package domain

import "time"

// Customer and Vendor are thin references to accounts managed by the
// external identity system. Only fields the rental engine needs (billing
// jurisdiction for GST, contact for notifications) live here.

type Customer struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	GSTIN     string    `json:"gstin"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type Vendor struct {
	ID          int32     `json:"id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	GSTIN       string    `json:"gstin"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}
