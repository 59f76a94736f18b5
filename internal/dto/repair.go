package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// CostInput accepts a decimal as either a JSON number or a numeric string,
// which is how the form UI submits estimated costs. Absent, null and empty
// string all decode to an unset value; anything non-numeric is a decode
// error so NaN can never reach storage.
type CostInput struct {
	value *float64
}

// Value returns the parsed amount, or nil when unset.
func (c CostInput) Value() *float64 {
	return c.value
}

// Set returns a CostInput holding the given amount. Used by tests.
func Set(amount float64) CostInput {
	return CostInput{value: &amount}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CostInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		c.value = nil
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			c.value = nil
			return nil
		}
		raw = s
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return fmt.Errorf("invalid cost %q", raw)
	}
	c.value = &parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c CostInput) MarshalJSON() ([]byte, error) {
	if c.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*c.value)
}

// CreateRepairRequest is the POST payload. Title, customer and repair type
// are required; the rest defaults in the service layer.
type CreateRepairRequest struct {
	Title         string    `json:"title" validate:"required"`
	CustomerName  string    `json:"customerName" validate:"required"`
	RepairType    string    `json:"repairType" validate:"required"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	EstimatedCost CostInput `json:"estimatedCost"`
	DateAdded     string    `json:"dateAdded"`
}

// CreateRepairResponse acknowledges a created repair.
type CreateRepairResponse struct {
	Message  string `json:"message"`
	RepairID int64  `json:"repairId"`
}

// UpdateRepairStatusRequest is the PUT/PATCH payload.
type UpdateRepairStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DeleteRepairResponse acknowledges a deletion.
type DeleteRepairResponse struct {
	Message string `json:"message"`
}
