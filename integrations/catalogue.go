package integrations

import (
	"errors"
	"sync"
)

var ErrUnknownIntegration = errors.New("unknown integration")

type Category string

const (
	CategoryCarrier     Category = "carrier"
	CategoryMarketplace Category = "marketplace"
)

// Integration is one connectable account shown on the integrations screen.
type Integration struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Active         bool     `json:"active"`
	Color          string   `json:"color"`
	TextColor      string   `json:"textColor,omitempty"`
	Abbr           string   `json:"abbr"`
	ConnectedSince string   `json:"connectedSince,omitempty"`
}

func defaultIntegrations() []Integration {
	return []Integration{
		{ID: "postnl", Name: "PostNL", Category: CategoryCarrier, Active: true, Color: "#FF6600", Abbr: "Post\nNL"},
		{ID: "dhl", Name: "DHL", Category: CategoryCarrier, Active: true, Color: "#FFCC00", TextColor: "#D40511", Abbr: "DHL"},
		{ID: "ups", Name: "UPS", Category: CategoryCarrier, Color: "#351C15", Abbr: "UPS"},
		{ID: "dpd", Name: "DPD", Category: CategoryCarrier, Color: "#DC0032", Abbr: "DPD"},
		{ID: "vinted", Name: "Vinted", Category: CategoryMarketplace, Active: true, Color: "#09B1BA", Abbr: "V", ConnectedSince: "jan 2026"},
		{ID: "bolcom", Name: "Bol.com", Category: CategoryMarketplace, Color: "#0000A4", Abbr: "bol."},
		{ID: "amazon", Name: "Amazon", Category: CategoryMarketplace, Color: "#FF9900", TextColor: "#232F3E", Abbr: "a"},
	}
}

// Catalogue keeps the integration toggles of every owner in memory.
type Catalogue struct {
	mu     sync.Mutex
	owners map[string][]Integration
}

func NewCatalogue() *Catalogue {
	return &Catalogue{owners: make(map[string][]Integration)}
}

func (c *Catalogue) list(ownerID string) []Integration {
	list, ok := c.owners[ownerID]
	if !ok {
		list = defaultIntegrations()
		c.owners[ownerID] = list
	}
	return list
}

func (c *Catalogue) List(ownerID string) []Integration {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.list(ownerID)
	out := make([]Integration, len(list))
	copy(out, list)
	return out
}

// ActiveIDs returns the ids of the owner's active integrations in display order.
func (c *Catalogue) ActiveIDs(ownerID string) []string {
	var ids []string
	for _, i := range c.List(ownerID) {
		if i.Active {
			ids = append(ids, i.ID)
		}
	}
	return ids
}

func (c *Catalogue) Toggle(ownerID, id string) (Integration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.list(ownerID)
	for i := range list {
		if list[i].ID == id {
			list[i].Active = !list[i].Active
			return list[i], nil
		}
	}
	return Integration{}, ErrUnknownIntegration
}

// MarkConnected activates ids, keeping an existing connectedSince.
func (c *Catalogue) MarkConnected(ownerID, since string, ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.list(ownerID)
	for i := range list {
		for _, id := range ids {
			if list[i].ID != id {
				continue
			}
			list[i].Active = true
			if list[i].ConnectedSince == "" {
				list[i].ConnectedSince = since
			}
		}
	}
}
