// internal/domain/cart/entity.go
package cart

import (
	"sort"
	"strings"
	"time"
)

// Promotion constants. Both rewards derive from quantity alone; there are
// no stored counters and no cross-order memory.
const (
	LabelsPerGift     = 10
	VolumeStep        = 10
	VolumeGiftPerStep = 2
)

// Line is one cart entry. Qty is strictly positive while the line exists; a
// quantity that would drop to zero removes the line entirely.
type Line struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Qty      int    `json:"qty"`
}

// SessionCart is the Redis-persisted cart for one shopper session
type SessionCart struct {
	SessionID string          `json:"session_id"`
	Lines     map[string]Line `json:"lines"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Summary is a derived projection of the cart, never stored
type Summary struct {
	Lines []Line `json:"lines"`
	Qty   int    `json:"qty"`
	Total int    `json:"total"`
}

// Promotion is the derived reward state for a quantity
type Promotion struct {
	LabelsEarned     int `json:"labelsEarned"`
	LabelsToNextGift int `json:"labelsToNextGift"`
	VolumeGiftQty    int `json:"volumeGiftQty"`
}

// LineKey builds the identity key for a cart line
func LineKey(category, name string) string {
	return strings.ToLower(category + "::" + name)
}

// Add increments the matching line's quantity by one, creating it if absent
func (c *SessionCart) Add(category, name string) Line {
	if c.Lines == nil {
		c.Lines = make(map[string]Line)
	}

	key := LineKey(category, name)
	line, ok := c.Lines[key]
	if !ok {
		line = Line{Key: key, Name: name, Category: category}
	}
	line.Qty++
	c.Lines[key] = line

	return line
}

// ChangeQty adds delta to a line's quantity. A result at or below zero
// removes the line; an absent key is a no-op.
func (c *SessionCart) ChangeQty(key string, delta int) {
	line, ok := c.Lines[key]
	if !ok {
		return
	}

	line.Qty += delta
	if line.Qty <= 0 {
		delete(c.Lines, key)
		return
	}
	c.Lines[key] = line
}

// Summarize projects the cart lines into totals at the given flat unit
// price. Lines come back sorted by key so responses are stable.
func Summarize(lines map[string]Line, unitPrice int) Summary {
	summary := Summary{Lines: make([]Line, 0, len(lines))}

	for _, line := range lines {
		summary.Lines = append(summary.Lines, line)
		summary.Qty += line.Qty
	}
	sort.Slice(summary.Lines, func(i, j int) bool {
		return summary.Lines[i].Key < summary.Lines[j].Key
	})

	summary.Total = summary.Qty * unitPrice
	return summary
}

// ComputePromotion derives both promotion rewards from a quantity
func ComputePromotion(qty int) Promotion {
	labelsEarned := qty % LabelsPerGift

	labelsToNextGift := LabelsPerGift - labelsEarned
	if labelsEarned == 0 {
		labelsToNextGift = LabelsPerGift
	}

	return Promotion{
		LabelsEarned:     labelsEarned,
		LabelsToNextGift: labelsToNextGift,
		VolumeGiftQty:    (qty / VolumeStep) * VolumeGiftPerStep,
	}
}
