package feeds

import (
	"encoding/json"
	"fmt"
	"io"
)

// ToolEntry describes one tool in the shop inventory.
type ToolEntry struct {
	Description string  `json:"description"`
	Diameter    float64 `json:"diameter"` // mm
	Flutes      int     `json:"flutes,omitempty"`
	Material    string  `json:"material,omitempty"`
}

// Inventory maps a tool type ("End Mill", "Drill", ...) to the tools of
// that type on hand. It is reference data loaded once at startup.
type Inventory map[string][]ToolEntry

// LoadInventory reads the inventory from JSON.
func LoadInventory(r io.Reader) (Inventory, error) {
	var inv Inventory
	if err := json.NewDecoder(r).Decode(&inv); err != nil {
		return nil, fmt.Errorf("load tool inventory: %w", err)
	}
	for toolType, tools := range inv {
		for i, te := range tools {
			if te.Diameter <= 0 {
				return nil, InvalidTableError{Index: i, Reason: fmt.Sprintf("%s %q has non-positive diameter %g", toolType, te.Description, te.Diameter)}
			}
		}
	}
	return inv, nil
}

// Find returns the inventory entry for a tool type and description.
func (inv Inventory) Find(toolType, description string) (ToolEntry, bool) {
	for _, te := range inv[toolType] {
		if te.Description == description {
			return te, true
		}
	}
	return ToolEntry{}, false
}

// Descriptions lists the descriptions available for a tool type.
func (inv Inventory) Descriptions(toolType string) []string {
	tools := inv[toolType]
	out := make([]string, 0, len(tools))
	for _, te := range tools {
		out = append(out, te.Description)
	}
	return out
}
